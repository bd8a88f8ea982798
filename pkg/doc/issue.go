package doc

import "fmt"

// Issue records one item that was skipped or degraded during an export.
// Issues are collected beside a document, never inside it.
type Issue struct {
	Node     string // node name, or node type during catalog generation
	Property string // property identifier, empty for node-level issues
	Err      error
}

// Error implements the error interface.
func (i Issue) Error() string {
	switch {
	case i.Property != "":
		return fmt.Sprintf("%s.%s: %v", i.Node, i.Property, i.Err)
	case i.Node != "":
		return fmt.Sprintf("%s: %v", i.Node, i.Err)
	}
	return i.Err.Error()
}

// Unwrap returns the underlying error.
func (i Issue) Unwrap() error { return i.Err }
