// Package introspect turns host property descriptors into [doc.Property]
// documents.
//
// Only the properties a concrete node type introduces are recorded. Anything
// the node inherits from the generic node base type is skipped, as are three
// identifiers that never carry information: the type self-reference
// (rna_type), the derived dimensions field, and internal_links.
package introspect

import (
	"fmt"

	"github.com/matzehuels/shadergraph/pkg/doc"
	"github.com/matzehuels/shadergraph/pkg/errors"
	"github.com/matzehuels/shadergraph/pkg/host"
	"github.com/matzehuels/shadergraph/pkg/value"
)

// Identifiers that are always skipped.
var ignored = map[string]bool{
	"rna_type":       true,
	"dimensions":     true,
	"internal_links": true,
}

// Reader reads a property's current value by identifier.
// host.Node satisfies Reader.
type Reader interface {
	Get(identifier string) (any, error)
}

// Property builds the document for one descriptor. A value that cannot be
// read or normalized becomes a null current_value; metadata that does not
// apply to the descriptor's type is omitted. The returned error is non-nil
// only when no document could be built at all.
func Property(r Reader, p host.Property) (doc.Property, error) {
	d, _, err := build(r, p)
	return d, err
}

// build also reports why current_value degraded to null, if it did.
func build(r Reader, p host.Property) (doc.Property, error, error) {
	if p.Identifier == "" {
		return doc.Property{}, nil, errors.New(errors.ErrCodePropertyRead, "property descriptor has no identifier")
	}

	out := doc.Property{
		Identifier:  p.Identifier,
		Name:        p.Name,
		Type:        p.Type.String(),
		Description: p.Description,
	}

	var degraded error
	v, err := read(r, p.Identifier)
	switch {
	case err != nil:
		degraded = errors.Wrap(errors.ErrCodePropertyRead, err, "read %s", p.Identifier)
	case !value.Representable(v):
		degraded = errors.New(errors.ErrCodeValueUnrepresentable, "%s: %T is not representable", p.Identifier, v)
	default:
		out.CurrentValue = value.Normalize(v)
	}

	switch p.Type {
	case host.PropertyEnum:
		items := make([]string, len(p.EnumItems))
		for i, item := range p.EnumItems {
			items[i] = item.Identifier
		}
		out.EnumItems = &items
	case host.PropertyInt, host.PropertyFloat:
		if p.ArrayLength > 0 {
			out.ArrayLength = p.ArrayLength
		}
		lo, hi := doc.Float(p.HardMin), doc.Float(p.HardMax)
		out.Min = &lo
		out.Max = &hi
	}

	return out, degraded, nil
}

// read isolates a host read so a panicking accessor degrades to an error.
func read(r Reader, identifier string) (v any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("read %s: %v", identifier, rec)
		}
	}()
	return r.Get(identifier)
}

// BaseIdentifiers returns the identifiers declared by the direct bases of s.
func BaseIdentifiers(s host.Struct) map[string]bool {
	out := make(map[string]bool)
	for _, base := range s.Bases() {
		for _, p := range base.Properties() {
			out[p.Identifier] = true
		}
	}
	return out
}

// OwnProperties returns the descriptors of s that are neither inherited from
// a base type nor on the ignore list, in declaration order.
func OwnProperties(s host.Struct) []host.Property {
	inherited := BaseIdentifiers(s)
	var out []host.Property
	for _, p := range s.Properties() {
		if inherited[p.Identifier] || ignored[p.Identifier] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Result is a property document or the failure that replaced it.
type Result struct {
	Property doc.Property

	// Degraded explains a null current_value. The property is still recorded.
	Degraded error

	// Err is set when the property could not be documented and must be skipped.
	Err error
}

// Walk introspects every own property of n. Failures do not stop the walk;
// they are returned in place of the failed property.
func Walk(n host.Node) []Result {
	own := OwnProperties(n.RNA())
	out := make([]Result, 0, len(own))
	for _, p := range own {
		out = append(out, safeBuild(n, p))
	}
	return out
}

func safeBuild(r Reader, p host.Property) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Result{
				Property: doc.Property{Identifier: p.Identifier},
				Err:      errors.New(errors.ErrCodePropertyRead, "property %s: %v", p.Identifier, rec),
			}
		}
	}()
	d, degraded, err := build(r, p)
	return Result{Property: d, Degraded: degraded, Err: err}
}
