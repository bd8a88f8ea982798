package memhost

import (
	"fmt"
	"slices"

	"github.com/matzehuels/shadergraph/pkg/host"
)

// Material is an in-memory material.
type Material struct {
	host     *Host
	name     string
	useNodes bool
	tree     *NodeTree

	BlendMode       string
	BackfaceCulling bool
}

// Name implements host.Material.
func (m *Material) Name() string { return m.name }

// UseNodes implements host.Material.
func (m *Material) UseNodes() bool { return m.useNodes }

// SetUseNodes implements host.Material. Enabling nodes creates an empty graph
// the first time.
func (m *Material) SetUseNodes(v bool) {
	m.useNodes = v
	if v && m.tree == nil {
		m.tree = &NodeTree{host: m.host}
	}
}

// BlendMethod implements host.Material.
func (m *Material) BlendMethod() string { return m.BlendMode }

// UseBackfaceCulling implements host.Material.
func (m *Material) UseBackfaceCulling() bool { return m.BackfaceCulling }

// NodeTree implements host.Material.
func (m *Material) NodeTree() host.NodeTree {
	if !m.useNodes || m.tree == nil {
		return nil
	}
	return m.tree
}

// Tree returns the concrete node graph, or nil when nodes are disabled.
func (m *Material) Tree() *NodeTree {
	if !m.useNodes {
		return nil
	}
	return m.tree
}

// NodeTree is an in-memory node graph.
type NodeTree struct {
	host  *Host
	nodes []*Node
	links []*Link
}

// Nodes implements host.NodeTree.
func (t *NodeTree) Nodes() []host.Node {
	out := make([]host.Node, len(t.nodes))
	for i, n := range t.nodes {
		out[i] = n
	}
	return out
}

// Links implements host.NodeTree.
func (t *NodeTree) Links() []host.Link {
	out := make([]host.Link, len(t.links))
	for i, l := range t.links {
		out[i] = l
	}
	return out
}

// ClearNodes implements host.NodeTree.
func (t *NodeTree) ClearNodes() {
	t.nodes = nil
	t.links = nil
}

// NewNode implements host.NodeTree.
func (t *NodeTree) NewNode(typeName string) (host.Node, error) {
	n, err := t.Add(typeName)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Add instantiates a node of the named type, named after the type's label.
func (t *NodeTree) Add(typeName string) (*Node, error) {
	def, ok := t.host.defs.Get(typeName)
	if !ok {
		return nil, fmt.Errorf("node type %q not found", typeName)
	}
	if def.NotNode || def.Unregistered {
		return nil, fmt.Errorf("node type %q is not instantiable", typeName)
	}
	if def.FailNew != nil {
		return nil, def.FailNew
	}

	name := def.Label
	if name == "" {
		name = def.Name
	}
	n := newNode(def, t.uniqueName(name))
	t.nodes = append(t.nodes, n)
	return n, nil
}

// Node returns the node with the given name, or nil.
func (t *NodeTree) Node(name string) *Node {
	for _, n := range t.nodes {
		if n.name == name {
			return n
		}
	}
	return nil
}

// Connect links an output socket of from to an input socket of to. Sockets
// are addressed by identifier.
func (t *NodeTree) Connect(from *Node, fromSocket string, to *Node, toSocket string) (*Link, error) {
	out := from.output(fromSocket)
	if out == nil {
		return nil, fmt.Errorf("node %q has no output %q", from.name, fromSocket)
	}
	in := to.input(toSocket)
	if in == nil {
		return nil, fmt.Errorf("node %q has no input %q", to.name, toSocket)
	}

	// An input accepts a single link; a new one replaces the old.
	for _, old := range slices.Clone(in.links) {
		t.disconnect(old)
	}

	l := &Link{from: out, to: in, valid: true}
	out.links = append(out.links, l)
	in.links = append(in.links, l)
	t.links = append(t.links, l)
	return l, nil
}

func (t *NodeTree) disconnect(l *Link) {
	l.from.links = slices.DeleteFunc(l.from.links, func(x *Link) bool { return x == l })
	l.to.links = slices.DeleteFunc(l.to.links, func(x *Link) bool { return x == l })
	t.links = slices.DeleteFunc(t.links, func(x *Link) bool { return x == l })
}

func (t *NodeTree) uniqueName(name string) string {
	if t.Node(name) == nil {
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.%03d", name, i)
		if t.Node(candidate) == nil {
			return candidate
		}
	}
}

// Link is an edge between two sockets.
type Link struct {
	from, to *Socket
	valid    bool
	hidden   bool
}

// FromNode implements host.Link.
func (l *Link) FromNode() host.Node { return l.from.node }

// FromSocket implements host.Link.
func (l *Link) FromSocket() host.Socket { return l.from }

// ToNode implements host.Link.
func (l *Link) ToNode() host.Node { return l.to.node }

// ToSocket implements host.Link.
func (l *Link) ToSocket() host.Socket { return l.to }

// IsValid implements host.Link.
func (l *Link) IsValid() bool { return l.valid }

// IsHidden implements host.Link.
func (l *Link) IsHidden() bool { return l.hidden }

// SetValid marks the link valid or invalid.
func (l *Link) SetValid(v bool) { l.valid = v }

// SetHidden marks the link hidden.
func (l *Link) SetHidden(v bool) { l.hidden = v }

var (
	_ host.Material = (*Material)(nil)
	_ host.NodeTree = (*NodeTree)(nil)
	_ host.Link     = (*Link)(nil)
)
