// Package host defines the introspection API through which shader node graphs
// are read from a 3D content-creation application.
//
// The exporter never talks to a live application directly. Every entry point
// receives a [Host] handle, so tests and offline tooling can substitute a
// synthetic graph (see the memhost and scene packages) for the real thing.
//
// # Object Model
//
//   - [Host]: version, materials, selected objects, and the registered type namespace
//   - [Material]: node flag, blend settings, and its [NodeTree]
//   - [Node]: identity, geometry, sockets, property descriptors, and extension state
//   - [Socket] and [Link]: the edges of the node graph
//
// Property descriptors are plain values ([Property]) tagged with an explicit
// [PropertyType], so callers dispatch on the tag instead of probing for
// optional capabilities.
package host

// Node type tags that carry extension state beyond their properties.
const (
	TypeColorRamp    = "VALTORGB"
	TypeRGBCurve     = "CURVE_RGB"
	TypeImageTexture = "TEX_IMAGE"
)

// NodeBaseType is the name of the generic node base type every node type derives from.
const NodeBaseType = "Node"

// ShaderNodePrefix is the name prefix shared by the shader node family.
const ShaderNodePrefix = "ShaderNode"

// Host is a handle on a live (or synthetic) host document.
type Host interface {
	// Version returns the host's version tuple, e.g. [4 2 0].
	Version() []int

	// Materials returns every material in the document in native order.
	Materials() []Material

	// Material looks up a material by name.
	Material(name string) (Material, bool)

	// SelectedObjects returns the objects currently selected in the document.
	SelectedObjects() []Object

	// Types returns the full registered-type namespace.
	Types() []TypeInfo

	// NewMaterial creates a material. The host may rename it to avoid collisions.
	NewMaterial(name string) (Material, error)

	// RemoveMaterial deletes a material from the document.
	RemoveMaterial(m Material) error
}

// Fingerprinter is implemented by hosts that can summarize their registered
// node type definitions. Hosts with equal fingerprints and versions yield
// identical catalogs, so the fingerprint is safe to cache on.
type Fingerprinter interface {
	Fingerprint() string
}

// Object is a scene object that may own material slots.
type Object interface {
	Name() string

	// Materials returns the object's material slots. Empty slots are nil.
	Materials() []Material
}

// Material is a host material.
type Material interface {
	Name() string
	UseNodes() bool
	SetUseNodes(bool)
	BlendMethod() string
	UseBackfaceCulling() bool

	// NodeTree returns the material's node graph, or nil when UseNodes is false.
	NodeTree() NodeTree
}

// NodeTree is a material's node graph.
type NodeTree interface {
	// Nodes returns the nodes in native iteration order.
	Nodes() []Node

	// Links returns every edge in the graph.
	Links() []Link

	// ClearNodes removes every node and link.
	ClearNodes()

	// NewNode instantiates one node of the named type.
	NewNode(typeName string) (Node, error)
}

// Node is a single node in a graph.
type Node interface {
	Name() string

	// IDName is the registered type name (e.g. "ShaderNodeValToRGB").
	IDName() string

	// Type is the node's type tag (e.g. "VALTORGB").
	Type() string

	Label() string

	// TypeLabel is the default label declared by the node type.
	TypeLabel() string

	Location() [2]float64
	Width() float64
	Height() float64
	Hide() bool
	Mute() bool

	Inputs() []Socket
	Outputs() []Socket

	// RNA describes the node's concrete type, including inherited properties.
	RNA() Struct

	// Get reads the current value of a property by identifier.
	Get(identifier string) (any, error)

	// ColorRamp returns ramp state for color-ramp nodes.
	ColorRamp() (*ColorRamp, error)

	// Curves returns curve mapping state for RGB-curve nodes.
	Curves() (*CurveMapping, error)

	// Image returns the referenced image for image-texture nodes, or nil.
	Image() (*Image, error)
}

// Socket is an input or output socket on a node.
type Socket interface {
	Name() string
	Identifier() string
	Type() string

	// DefaultValue returns the socket's default value. ok is false when the
	// socket type has no default (e.g. shader sockets).
	DefaultValue() (v any, ok bool)

	Enabled() bool
	Hide() bool
	HideValue() bool
	IsLinked() bool

	// Links returns the links attached to this socket.
	Links() []Link
}

// Link is one edge in a node graph.
type Link interface {
	FromNode() Node
	FromSocket() Socket
	ToNode() Node
	ToSocket() Socket
	IsValid() bool
	IsHidden() bool
}

// Struct describes an introspectable type.
type Struct interface {
	Identifier() string

	// Properties returns every declared property, including inherited ones.
	Properties() []Property

	// Bases returns the direct base types.
	Bases() []Struct
}

// TypeInfo is one entry of the host's registered-type namespace.
type TypeInfo struct {
	Name string

	// IsNode reports whether the type derives from the generic node base type.
	IsNode bool

	// Registered reports whether the type can currently be instantiated.
	Registered bool
}
