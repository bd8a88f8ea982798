package memhost

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/shadergraph/pkg/host"
)

// Default node geometry.
const (
	DefaultWidth  = 140.0
	DefaultHeight = 100.0
)

// NodeDef defines a registrable node type.
type NodeDef struct {
	Name  string // registered type name, e.g. "ShaderNodeValToRGB"
	Type  string // type tag, e.g. "VALTORGB"
	Label string // default label

	Width  float64
	Height float64

	Inputs  []SocketDef
	Outputs []SocketDef

	// Properties are the descriptors this type introduces on top of the
	// generic node base type.
	Properties []host.Property

	// Defaults holds the initial value of each property, by identifier.
	Defaults map[string]any

	// ColorRamp and Curves seed the extension state of new nodes.
	ColorRamp *host.ColorRamp
	Curves    *host.CurveMapping

	// NotNode makes the entry a non-node type in the namespace.
	NotNode bool

	// Unregistered makes the type visible but not instantiable.
	Unregistered bool

	// FailNew, when set, is returned by every instantiation attempt.
	FailNew error
}

// SocketDef defines a socket on a node type.
type SocketDef struct {
	Name       string
	Identifier string
	Type       string

	// Default is the socket's default value; nil means the socket type has none.
	Default any

	Disabled  bool
	Hidden    bool
	HideValue bool
}

// Node is an in-memory node.
type Node struct {
	def      *NodeDef
	name     string
	label    string
	location [2]float64
	width    float64
	height   float64
	hide     bool
	mute     bool

	inputs  []*Socket
	outputs []*Socket

	values   map[string]any
	readErrs map[string]error

	ramp   *host.ColorRamp
	curves *host.CurveMapping
	image  *host.Image
	extErr error
	rna    *structDef
}

func newNode(def *NodeDef, name string) *Node {
	n := &Node{
		def:      def,
		name:     name,
		width:    def.Width,
		height:   def.Height,
		values:   maps.Clone(def.Defaults),
		readErrs: make(map[string]error),
		ramp:     cloneRamp(def.ColorRamp),
		curves:   cloneCurves(def.Curves),
	}
	if n.width == 0 {
		n.width = DefaultWidth
	}
	if n.height == 0 {
		n.height = DefaultHeight
	}
	if n.values == nil {
		n.values = make(map[string]any)
	}
	for _, sd := range def.Inputs {
		n.inputs = append(n.inputs, &Socket{node: n, def: sd, value: sd.Default})
	}
	for _, sd := range def.Outputs {
		n.outputs = append(n.outputs, &Socket{node: n, def: sd, value: sd.Default, output: true})
	}
	n.rna = &structDef{
		id:    def.Name,
		props: append(slices.Clone(shaderNodeStruct.props), def.Properties...),
		bases: []host.Struct{shaderNodeStruct},
	}
	return n
}

// Name implements host.Node.
func (n *Node) Name() string { return n.name }

// IDName implements host.Node.
func (n *Node) IDName() string { return n.def.Name }

// Type implements host.Node.
func (n *Node) Type() string { return n.def.Type }

// Label implements host.Node.
func (n *Node) Label() string { return n.label }

// TypeLabel implements host.Node.
func (n *Node) TypeLabel() string { return n.def.Label }

// Location implements host.Node.
func (n *Node) Location() [2]float64 { return n.location }

// Width implements host.Node.
func (n *Node) Width() float64 { return n.width }

// Height implements host.Node.
func (n *Node) Height() float64 { return n.height }

// Hide implements host.Node.
func (n *Node) Hide() bool { return n.hide }

// Mute implements host.Node.
func (n *Node) Mute() bool { return n.mute }

// Inputs implements host.Node.
func (n *Node) Inputs() []host.Socket { return sockets(n.inputs) }

// Outputs implements host.Node.
func (n *Node) Outputs() []host.Socket { return sockets(n.outputs) }

// RNA implements host.Node.
func (n *Node) RNA() host.Struct { return n.rna }

// Get implements host.Node. Base-type identifiers resolve to the node's own
// fields; everything else comes from the property values.
func (n *Node) Get(identifier string) (any, error) {
	if err, ok := n.readErrs[identifier]; ok {
		return nil, err
	}
	switch identifier {
	case "rna_type":
		return n.rna, nil
	case "name":
		return n.name, nil
	case "label":
		return n.label, nil
	case "type":
		return n.def.Type, nil
	case "bl_idname":
		return n.def.Name, nil
	case "location":
		return n.location, nil
	case "width":
		return n.width, nil
	case "height":
		return n.height, nil
	case "dimensions":
		return [2]float64{n.width, n.height}, nil
	case "hide":
		return n.hide, nil
	case "mute":
		return n.mute, nil
	}
	if v, ok := n.values[identifier]; ok {
		return v, nil
	}
	for _, p := range n.rna.props {
		if p.Identifier == identifier {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("%s has no property %q", n.def.Name, identifier)
}

// ColorRamp implements host.Node.
func (n *Node) ColorRamp() (*host.ColorRamp, error) {
	if n.extErr != nil {
		return nil, n.extErr
	}
	if n.ramp == nil {
		return nil, fmt.Errorf("%s has no color ramp", n.name)
	}
	return cloneRamp(n.ramp), nil
}

// Curves implements host.Node.
func (n *Node) Curves() (*host.CurveMapping, error) {
	if n.extErr != nil {
		return nil, n.extErr
	}
	if n.curves == nil {
		return nil, fmt.Errorf("%s has no curve mapping", n.name)
	}
	return cloneCurves(n.curves), nil
}

// Image implements host.Node.
func (n *Node) Image() (*host.Image, error) {
	if n.extErr != nil {
		return nil, n.extErr
	}
	if n.image == nil {
		return nil, nil
	}
	im := *n.image
	return &im, nil
}

// SetName renames the node.
func (n *Node) SetName(name string) { n.name = name }

// SetLabel sets the node's label.
func (n *Node) SetLabel(label string) { n.label = label }

// SetLocation moves the node.
func (n *Node) SetLocation(x, y float64) { n.location = [2]float64{x, y} }

// SetSize sets the node's width and height.
func (n *Node) SetSize(w, h float64) {
	n.width = w
	n.height = h
}

// SetHide collapses or expands the node.
func (n *Node) SetHide(v bool) { n.hide = v }

// SetMute mutes or unmutes the node.
func (n *Node) SetMute(v bool) { n.mute = v }

// SetValue sets a property's current value.
func (n *Node) SetValue(identifier string, v any) { n.values[identifier] = v }

// SetReadError makes reads of a property fail with err.
func (n *Node) SetReadError(identifier string, err error) { n.readErrs[identifier] = err }

// SetColorRamp replaces the node's ramp state.
func (n *Node) SetColorRamp(r *host.ColorRamp) { n.ramp = cloneRamp(r) }

// SetCurves replaces the node's curve mapping.
func (n *Node) SetCurves(c *host.CurveMapping) { n.curves = cloneCurves(c) }

// SetImage assigns the image referenced by the node.
func (n *Node) SetImage(im *host.Image) {
	n.image = im
	if im != nil {
		n.values["image"] = im
	} else {
		delete(n.values, "image")
	}
}

// SetExtensionError makes every extension read fail with err.
func (n *Node) SetExtensionError(err error) { n.extErr = err }

// Input returns the input socket with the given identifier, or nil.
func (n *Node) Input(identifier string) *Socket { return n.input(identifier) }

// Output returns the output socket with the given identifier, or nil.
func (n *Node) Output(identifier string) *Socket { return n.output(identifier) }

func (n *Node) input(identifier string) *Socket {
	for _, s := range n.inputs {
		if s.def.Identifier == identifier {
			return s
		}
	}
	return nil
}

func (n *Node) output(identifier string) *Socket {
	for _, s := range n.outputs {
		if s.def.Identifier == identifier {
			return s
		}
	}
	return nil
}

// Socket is an in-memory socket.
type Socket struct {
	node   *Node
	def    SocketDef
	value  any
	output bool
	links  []*Link
}

// Name implements host.Socket.
func (s *Socket) Name() string { return s.def.Name }

// Identifier implements host.Socket.
func (s *Socket) Identifier() string { return s.def.Identifier }

// Type implements host.Socket.
func (s *Socket) Type() string { return s.def.Type }

// DefaultValue implements host.Socket.
func (s *Socket) DefaultValue() (any, bool) {
	if s.def.Default == nil {
		return nil, false
	}
	return s.value, true
}

// SetDefault overrides the socket's default value.
func (s *Socket) SetDefault(v any) { s.value = v }

// SetHide hides or shows the socket.
func (s *Socket) SetHide(v bool) { s.def.Hidden = v }

// SetEnabled enables or disables the socket.
func (s *Socket) SetEnabled(v bool) { s.def.Disabled = !v }

// Enabled implements host.Socket.
func (s *Socket) Enabled() bool { return !s.def.Disabled }

// Hide implements host.Socket.
func (s *Socket) Hide() bool { return s.def.Hidden }

// HideValue implements host.Socket.
func (s *Socket) HideValue() bool { return s.def.HideValue }

// IsLinked implements host.Socket.
func (s *Socket) IsLinked() bool { return len(s.links) > 0 }

// Links implements host.Socket.
func (s *Socket) Links() []host.Link {
	out := make([]host.Link, len(s.links))
	for i, l := range s.links {
		out[i] = l
	}
	return out
}

func sockets(in []*Socket) []host.Socket {
	out := make([]host.Socket, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// cloneRamp copies r with its stops in ascending position, the order the
// host keeps them in.
func cloneRamp(r *host.ColorRamp) *host.ColorRamp {
	if r == nil {
		return nil
	}
	c := *r
	c.Elements = slices.Clone(r.Elements)
	slices.SortStableFunc(c.Elements, func(a, b host.RampElement) int {
		return cmp.Compare(a.Position, b.Position)
	})
	return &c
}

func cloneCurves(m *host.CurveMapping) *host.CurveMapping {
	if m == nil {
		return nil
	}
	c := &host.CurveMapping{Curves: make([]host.Curve, len(m.Curves))}
	for i, curve := range m.Curves {
		c.Curves[i] = host.Curve{Points: slices.Clone(curve.Points)}
	}
	return c
}

var (
	_ host.Node   = (*Node)(nil)
	_ host.Socket = (*Socket)(nil)
)
