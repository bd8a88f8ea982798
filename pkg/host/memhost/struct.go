package memhost

import (
	"math"

	"github.com/matzehuels/shadergraph/pkg/host"
)

// structDef is a type descriptor.
type structDef struct {
	id    string
	props []host.Property
	bases []host.Struct
}

func (s *structDef) Identifier() string          { return s.id }
func (s *structDef) Properties() []host.Property { return s.props }
func (s *structDef) Bases() []host.Struct        { return s.bases }

// TypeName and RefName make a descriptor serialize as a reference.
func (s *structDef) TypeName() string        { return "Struct" }
func (s *structDef) RefName() (string, bool) { return s.id, true }

const maxFloat32 = math.MaxFloat32

// nodeStruct is the generic node base type.
var nodeStruct = &structDef{
	id: host.NodeBaseType,
	props: []host.Property{
		{Identifier: "rna_type", Name: "RNA", Type: host.PropertyPointer, Description: "RNA type definition"},
		{Identifier: "type", Name: "Type", Type: host.PropertyEnum, Description: "Node type (deprecated, use bl_static_type or bl_idname for the actual identifier string)"},
		{Identifier: "location", Name: "Location", Type: host.PropertyFloat, ArrayLength: 2, HardMin: -100000, HardMax: 100000},
		{Identifier: "width", Name: "Width", Type: host.PropertyFloat, Description: "Width of the node", HardMin: -maxFloat32, HardMax: maxFloat32},
		{Identifier: "height", Name: "Height", Type: host.PropertyFloat, Description: "Height of the node", HardMin: -maxFloat32, HardMax: maxFloat32},
		{Identifier: "dimensions", Name: "Dimensions", Type: host.PropertyFloat, ArrayLength: 2, Description: "Absolute bounding box dimensions of the node", HardMin: -maxFloat32, HardMax: maxFloat32},
		{Identifier: "name", Name: "Name", Type: host.PropertyString, Description: "Unique node identifier"},
		{Identifier: "label", Name: "Label", Type: host.PropertyString, Description: "Optional custom node label"},
		{Identifier: "inputs", Name: "Inputs", Type: host.PropertyCollection},
		{Identifier: "outputs", Name: "Outputs", Type: host.PropertyCollection},
		{Identifier: "internal_links", Name: "Internal Links", Type: host.PropertyCollection, Description: "Internal input-to-output connections for muting"},
		{Identifier: "parent", Name: "Parent", Type: host.PropertyPointer, Description: "Parent this node is attached to"},
		{Identifier: "hide", Name: "Hide", Type: host.PropertyBoolean},
		{Identifier: "mute", Name: "Mute", Type: host.PropertyBoolean},
		{Identifier: "select", Name: "Select", Type: host.PropertyBoolean, Description: "Node selection state"},
		{Identifier: "show_options", Name: "Show Options", Type: host.PropertyBoolean},
		{Identifier: "show_preview", Name: "Show Preview", Type: host.PropertyBoolean},
		{Identifier: "bl_idname", Name: "ID Name", Type: host.PropertyString},
		{Identifier: "bl_label", Name: "Label", Type: host.PropertyString, Description: "The node label"},
	},
}

// shaderNodeStruct is the shader node family base; it adds nothing to the
// generic node type.
var shaderNodeStruct = &structDef{
	id:    "ShaderNode",
	props: nodeStruct.props,
	bases: []host.Struct{nodeStruct},
}

var (
	_ host.Struct = (*structDef)(nil)
	_ host.Ref    = (*structDef)(nil)
)
