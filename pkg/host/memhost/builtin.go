package memhost

import "github.com/matzehuels/shadergraph/pkg/host"

// Ref is a named reference value, such as a property pointing at an image or
// a color mapping.
type Ref struct {
	Type string
	Name string
}

// TypeName implements host.Ref.
func (r Ref) TypeName() string { return r.Type }

// RefName implements host.Ref.
func (r Ref) RefName() (string, bool) { return r.Name, r.Name != "" }

// RegisterBuiltins registers the shader node types returned by [Builtins].
func (h *Host) RegisterBuiltins() {
	for _, def := range Builtins() {
		h.Register(def)
	}
}

// Builtins returns definitions for a representative subset of the host's
// shader nodes, including one of each extension-carrying type.
func Builtins() []NodeDef {
	return []NodeDef{
		{
			Name:  "ShaderNodeOutputMaterial",
			Type:  "OUTPUT_MATERIAL",
			Label: "Material Output",
			Inputs: []SocketDef{
				{Name: "Surface", Identifier: "Surface", Type: "SHADER"},
				{Name: "Volume", Identifier: "Volume", Type: "SHADER"},
				{Name: "Displacement", Identifier: "Displacement", Type: "VECTOR", Default: []float64{0, 0, 0}, HideValue: true},
				{Name: "Thickness", Identifier: "Thickness", Type: "VALUE", Default: 0.0},
			},
			Properties: []host.Property{
				{Identifier: "is_active_output", Name: "Active Output", Type: host.PropertyBoolean, Description: "True if this node is used as the active output"},
				enum("target", "Target", "Which renderer and viewport shading types to use the shaders for", "ALL", "EEVEE", "CYCLES"),
			},
			Defaults: map[string]any{"is_active_output": true, "target": "ALL"},
		},
		{
			Name:   "ShaderNodeBsdfPrincipled",
			Type:   "BSDF_PRINCIPLED",
			Label:  "Principled BSDF",
			Width:  240,
			Height: 100,
			Inputs: []SocketDef{
				{Name: "Base Color", Identifier: "Base Color", Type: "RGBA", Default: []float64{0.8, 0.8, 0.8, 1}},
				{Name: "Metallic", Identifier: "Metallic", Type: "VALUE", Default: 0.0},
				{Name: "Roughness", Identifier: "Roughness", Type: "VALUE", Default: 0.5},
				{Name: "IOR", Identifier: "IOR", Type: "VALUE", Default: 1.5},
				{Name: "Alpha", Identifier: "Alpha", Type: "VALUE", Default: 1.0},
				{Name: "Normal", Identifier: "Normal", Type: "VECTOR", Default: []float64{0, 0, 0}, HideValue: true},
			},
			Outputs: []SocketDef{
				{Name: "BSDF", Identifier: "BSDF", Type: "SHADER"},
			},
			Properties: []host.Property{
				enum("distribution", "Distribution", "Light scattering distribution on rough surface", "GGX", "MULTI_GGX"),
				enum("subsurface_method", "Subsurface Method", "Method for rendering subsurface scattering", "BURLEY", "RANDOM_WALK", "RANDOM_WALK_SKIN"),
			},
			Defaults: map[string]any{"distribution": "MULTI_GGX", "subsurface_method": "RANDOM_WALK"},
		},
		{
			Name:  "ShaderNodeValToRGB",
			Type:  host.TypeColorRamp,
			Label: "Color Ramp",
			Width: 240,
			Inputs: []SocketDef{
				{Name: "Fac", Identifier: "Fac", Type: "VALUE", Default: 0.5},
			},
			Outputs: []SocketDef{
				{Name: "Color", Identifier: "Color", Type: "RGBA", Default: []float64{0, 0, 0, 0}},
				{Name: "Alpha", Identifier: "Alpha", Type: "VALUE", Default: 0.0},
			},
			Properties: []host.Property{
				{Identifier: "color_ramp", Name: "Color Ramp", Type: host.PropertyPointer},
			},
			Defaults: map[string]any{"color_ramp": Ref{Type: "ColorRamp"}},
			ColorRamp: &host.ColorRamp{
				ColorMode:        "RGB",
				Interpolation:    "LINEAR",
				HueInterpolation: "NEAR",
				Elements: []host.RampElement{
					{Position: 0, Color: [4]float64{0, 0, 0, 1}, Alpha: 1},
					{Position: 1, Color: [4]float64{1, 1, 1, 1}, Alpha: 1},
				},
			},
		},
		{
			Name:  "ShaderNodeRGBCurve",
			Type:  host.TypeRGBCurve,
			Label: "RGB Curves",
			Width: 240,
			Inputs: []SocketDef{
				{Name: "Fac", Identifier: "Fac", Type: "VALUE", Default: 1.0},
				{Name: "Color", Identifier: "Color", Type: "RGBA", Default: []float64{1, 1, 1, 1}},
			},
			Outputs: []SocketDef{
				{Name: "Color", Identifier: "Color", Type: "RGBA", Default: []float64{0, 0, 0, 0}},
			},
			Properties: []host.Property{
				{Identifier: "mapping", Name: "Mapping", Type: host.PropertyPointer},
			},
			Defaults: map[string]any{"mapping": Ref{Type: "CurveMapping"}},
			Curves: &host.CurveMapping{Curves: []host.Curve{
				identityCurve(), identityCurve(), identityCurve(), identityCurve(),
			}},
		},
		{
			Name:  "ShaderNodeTexImage",
			Type:  host.TypeImageTexture,
			Label: "Image Texture",
			Width: 240,
			Inputs: []SocketDef{
				{Name: "Vector", Identifier: "Vector", Type: "VECTOR", Default: []float64{0, 0, 0}, HideValue: true},
			},
			Outputs: []SocketDef{
				{Name: "Color", Identifier: "Color", Type: "RGBA", Default: []float64{0, 0, 0, 0}},
				{Name: "Alpha", Identifier: "Alpha", Type: "VALUE", Default: 0.0},
			},
			Properties: []host.Property{
				{Identifier: "image", Name: "Image", Type: host.PropertyPointer},
				enum("interpolation", "Interpolation", "Texture interpolation", "Linear", "Closest", "Cubic", "Smart"),
				enum("projection", "Projection", "Method to project 2D image on object with a 3D texture vector", "FLAT", "BOX", "SPHERE", "TUBE"),
				{Identifier: "projection_blend", Name: "Projection Blend", Type: host.PropertyFloat, Description: "For box projection, amount of blend to use between sides", HardMin: 0, HardMax: 1},
				enum("extension", "Extension", "How the image is extrapolated past its original bounds", "REPEAT", "EXTEND", "CLIP", "MIRROR"),
			},
			Defaults: map[string]any{
				"interpolation":    "Linear",
				"projection":       "FLAT",
				"projection_blend": 0.0,
				"extension":        "REPEAT",
			},
		},
		{
			Name:  "ShaderNodeMath",
			Type:  "MATH",
			Label: "Math",
			Inputs: []SocketDef{
				{Name: "Value", Identifier: "Value", Type: "VALUE", Default: 0.5},
				{Name: "Value", Identifier: "Value_001", Type: "VALUE", Default: 0.5},
				{Name: "Value", Identifier: "Value_002", Type: "VALUE", Default: 0.5, Disabled: true},
			},
			Outputs: []SocketDef{
				{Name: "Value", Identifier: "Value", Type: "VALUE", Default: 0.0},
			},
			Properties: []host.Property{
				enum("operation", "Operation", "", "ADD", "SUBTRACT", "MULTIPLY", "DIVIDE", "POWER"),
				{Identifier: "use_clamp", Name: "Clamp", Type: host.PropertyBoolean, Description: "Clamp result of the node to 0.0 to 1.0 range"},
			},
			Defaults: map[string]any{"operation": "ADD", "use_clamp": false},
		},
		{
			Name:  "ShaderNodeValue",
			Type:  "VALUE",
			Label: "Value",
			Outputs: []SocketDef{
				{Name: "Value", Identifier: "Value", Type: "VALUE", Default: 0.5},
			},
		},
		{
			Name:  "ShaderNodeMapping",
			Type:  "MAPPING",
			Label: "Mapping",
			Inputs: []SocketDef{
				{Name: "Vector", Identifier: "Vector", Type: "VECTOR", Default: []float64{0, 0, 0}},
				{Name: "Location", Identifier: "Location", Type: "VECTOR", Default: []float64{0, 0, 0}},
				{Name: "Rotation", Identifier: "Rotation", Type: "VECTOR", Default: []float64{0, 0, 0}},
				{Name: "Scale", Identifier: "Scale", Type: "VECTOR", Default: []float64{1, 1, 1}},
			},
			Outputs: []SocketDef{
				{Name: "Vector", Identifier: "Vector", Type: "VECTOR", Default: []float64{0, 0, 0}},
			},
			Properties: []host.Property{
				enum("vector_type", "Type", "Type of vector that the mapping transforms", "POINT", "TEXTURE", "VECTOR", "NORMAL"),
			},
			Defaults: map[string]any{"vector_type": "POINT"},
		},
	}
}

func enum(id, name, desc string, items ...string) host.Property {
	p := host.Property{Identifier: id, Name: name, Description: desc, Type: host.PropertyEnum}
	for _, item := range items {
		p.EnumItems = append(p.EnumItems, host.EnumItem{Identifier: item, Name: item})
	}
	return p
}

func identityCurve() host.Curve {
	return host.Curve{Points: []host.CurvePoint{
		{Location: [2]float64{0, 0}, HandleType: "AUTO"},
		{Location: [2]float64{1, 1}, HandleType: "AUTO"},
	}}
}

var _ host.Ref = Ref{}
