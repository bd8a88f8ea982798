// Package memhost is an in-memory implementation of [host.Host].
//
// It models just enough of the host's node system to drive every export path:
// a registered-type namespace, materials with node graphs, sockets, links, the
// generic node base type, and the extension state of color-ramp, RGB-curve
// and image-texture nodes. Failures can be injected per type, per property,
// and per node extension.
//
//	h := memhost.New(4, 2, 0)
//	h.Register(memhost.NodeDef{Name: "ShaderNodeValue", Type: "VALUE", Label: "Value", ...})
//	mat := h.AddMaterial("Wood", true)
//	n, _ := mat.Tree().Add("ShaderNodeValue")
package memhost

import (
	"fmt"
	"slices"

	"github.com/tidwall/btree"

	"github.com/matzehuels/shadergraph/pkg/host"
)

// Host is an in-memory host document. It is not safe for concurrent use.
type Host struct {
	version   []int
	types     btree.Map[string, host.TypeInfo]
	defs      btree.Map[string, *NodeDef]
	materials []*Material
	objects   []*Object
}

// New creates an empty host reporting the given version.
func New(version ...int) *Host {
	return &Host{version: slices.Clone(version)}
}

// Register adds a node type to the registered-type namespace.
// Registering a name twice replaces the earlier definition.
func (h *Host) Register(def NodeDef) {
	d := def
	h.defs.Set(d.Name, &d)
	h.types.Set(d.Name, host.TypeInfo{
		Name:       d.Name,
		IsNode:     !d.NotNode,
		Registered: !d.Unregistered,
	})
}

// RegisterType adds a non-node entry to the type namespace.
func (h *Host) RegisterType(info host.TypeInfo) {
	h.types.Set(info.Name, info)
}

// Def returns the node type definition registered under name.
func (h *Host) Def(name string) (*NodeDef, bool) {
	return h.defs.Get(name)
}

// Version implements host.Host.
func (h *Host) Version() []int { return slices.Clone(h.version) }

// Types implements host.Host. Entries come back in name order.
func (h *Host) Types() []host.TypeInfo {
	out := make([]host.TypeInfo, 0, h.types.Len())
	h.types.Scan(func(_ string, info host.TypeInfo) bool {
		out = append(out, info)
		return true
	})
	return out
}

// Materials implements host.Host.
func (h *Host) Materials() []host.Material {
	out := make([]host.Material, len(h.materials))
	for i, m := range h.materials {
		out[i] = m
	}
	return out
}

// Material implements host.Host.
func (h *Host) Material(name string) (host.Material, bool) {
	if m := h.find(name); m != nil {
		return m, true
	}
	return nil, false
}

// Lookup returns the concrete material registered under name, or nil.
func (h *Host) Lookup(name string) *Material {
	return h.find(name)
}

// SelectedObjects implements host.Host.
func (h *Host) SelectedObjects() []host.Object {
	var out []host.Object
	for _, o := range h.objects {
		if o.Selected {
			out = append(out, o)
		}
	}
	return out
}

// NewMaterial implements host.Host. Colliding names get a numeric suffix
// (".001", ".002", ...).
func (h *Host) NewMaterial(name string) (host.Material, error) {
	if name == "" {
		return nil, fmt.Errorf("material name cannot be empty")
	}
	return h.AddMaterial(h.uniqueName(name), false), nil
}

// RemoveMaterial implements host.Host.
func (h *Host) RemoveMaterial(m host.Material) error {
	for i, existing := range h.materials {
		if host.Material(existing) == m {
			h.materials = slices.Delete(h.materials, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("material %q is not part of this document", m.Name())
}

// AddMaterial appends a material with the exact given name.
func (h *Host) AddMaterial(name string, useNodes bool) *Material {
	m := &Material{host: h, name: name, BlendMode: "OPAQUE"}
	m.SetUseNodes(useNodes)
	h.materials = append(h.materials, m)
	return m
}

// AddObject appends an object owning the given material slots. A nil slot is
// an empty slot.
func (h *Host) AddObject(name string, selected bool, slots ...*Material) *Object {
	o := &Object{name: name, Selected: selected, slots: slots}
	h.objects = append(h.objects, o)
	return o
}

func (h *Host) find(name string) *Material {
	for _, m := range h.materials {
		if m.name == name {
			return m
		}
	}
	return nil
}

func (h *Host) uniqueName(name string) string {
	if h.find(name) == nil {
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.%03d", name, i)
		if h.find(candidate) == nil {
			return candidate
		}
	}
}

// Object is a scene object with material slots.
type Object struct {
	name     string
	slots    []*Material
	Selected bool
}

// Name implements host.Object.
func (o *Object) Name() string { return o.name }

// Materials implements host.Object. Empty slots are nil.
func (o *Object) Materials() []host.Material {
	out := make([]host.Material, len(o.slots))
	for i, m := range o.slots {
		if m != nil {
			out[i] = m
		}
	}
	return out
}

var (
	_ host.Host   = (*Host)(nil)
	_ host.Object = (*Object)(nil)
)
