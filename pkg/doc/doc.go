// Package doc defines the serialized documents produced by an export.
//
// The JSON keys follow the host's own naming (bl_idname, default_value,
// blender_version, ...) so exported files line up with the host's Python API.
//
// Two forms of "missing" are used and must not be conflated:
//   - A nullable field (DefaultValue, CurrentValue) is always present and is
//     null when the value is not representable as JSON. Numeric fields of
//     type [Float] are likewise null when non-finite.
//   - A conditional field (Links, EnumItems, ArrayLength, Min, Max, and the
//     node extension blocks) is omitted entirely when it does not apply.
//     EnumItems is a pointer so an ENUM without choices still carries [].
package doc

// Node is the serialized form of one graph node.
type Node struct {
	Name       string              `json:"name"`
	IDName     string              `json:"bl_idname"`
	Type       string              `json:"type"`
	Label      string              `json:"label"`
	Location   [2]Float            `json:"location"`
	Width      Float               `json:"width"`
	Height     Float               `json:"height"`
	Hide       bool                `json:"hide"`
	Mute       bool                `json:"mute"`
	Inputs     []InputSocket       `json:"inputs"`
	Outputs    []OutputSocket      `json:"outputs"`
	Properties map[string]Property `json:"properties"`

	ColorRamp *ColorRamp `json:"color_ramp,omitempty"`
	Curves    []Curve    `json:"curves,omitempty"`
	Image     *Image     `json:"image,omitempty"`
}

// InputSocket is the serialized form of an input socket.
type InputSocket struct {
	Name         string `json:"name"`
	Identifier   string `json:"identifier"`
	Type         string `json:"type"`
	DefaultValue any    `json:"default_value"`
	Enabled      bool   `json:"enabled"`
	Hide         bool   `json:"hide"`
	HideValue    bool   `json:"hide_value"`

	// IsLinked and Links are present only when the socket has connections.
	IsLinked bool           `json:"is_linked,omitempty"`
	Links    []IncomingLink `json:"links,omitempty"`
}

// OutputSocket is the serialized form of an output socket.
type OutputSocket struct {
	Name         string `json:"name"`
	Identifier   string `json:"identifier"`
	Type         string `json:"type"`
	DefaultValue any    `json:"default_value"`
	Enabled      bool   `json:"enabled"`
	Hide         bool   `json:"hide"`

	IsLinked bool           `json:"is_linked,omitempty"`
	Links    []OutgoingLink `json:"links,omitempty"`
}

// IncomingLink names the peer of an input socket connection.
type IncomingLink struct {
	FromNode   string `json:"from_node"`
	FromSocket string `json:"from_socket"`
}

// OutgoingLink names the peer of an output socket connection.
type OutgoingLink struct {
	ToNode   string `json:"to_node"`
	ToSocket string `json:"to_socket"`
}

// Property is the serialized form of one property descriptor.
type Property struct {
	Identifier   string `json:"identifier"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Description  string `json:"description"`
	CurrentValue any    `json:"current_value"`

	EnumItems   *[]string `json:"enum_items,omitempty"`
	ArrayLength int       `json:"array_length,omitempty"`
	Min         *Float    `json:"min,omitempty"`
	Max         *Float    `json:"max,omitempty"`
}

// ColorRamp holds color-ramp node state.
type ColorRamp struct {
	ColorMode        string        `json:"color_mode"`
	HueInterpolation string        `json:"hue_interpolation"`
	Interpolation    string        `json:"interpolation"`
	Elements         []RampElement `json:"elements"`
}

// RampElement is one ramp stop. Alpha repeats Color[3].
type RampElement struct {
	Position Float    `json:"position"`
	Color    [4]Float `json:"color"`
	Alpha    Float    `json:"alpha"`
}

// Curve is one channel of an RGB-curve node.
type Curve struct {
	Points []CurvePoint `json:"points"`
}

// CurvePoint is a curve control point.
type CurvePoint struct {
	Location   [2]Float `json:"location"`
	HandleType string   `json:"handle_type"`
}

// Image describes the image referenced by an image-texture node.
type Image struct {
	Name       string     `json:"name"`
	Filepath   string     `json:"filepath"`
	Size       [2]int     `json:"size"`
	Colorspace Colorspace `json:"colorspace_settings"`
}

// Colorspace names an image's color space.
type Colorspace struct {
	Name string `json:"name"`
}

// Link is one edge of a material's node graph.
type Link struct {
	FromNode             string `json:"from_node"`
	FromSocket           string `json:"from_socket"`
	FromSocketIdentifier string `json:"from_socket_identifier"`
	ToNode               string `json:"to_node"`
	ToSocket             string `json:"to_socket"`
	ToSocketIdentifier   string `json:"to_socket_identifier"`
	IsValid              bool   `json:"is_valid"`
	IsHidden             bool   `json:"is_hidden"`
}

// MaterialGraph is the export of one material's node graph.
type MaterialGraph struct {
	MaterialName       string `json:"material_name"`
	BlendMethod        string `json:"blend_method"`
	UseBackfaceCulling bool   `json:"use_backface_culling"`
	Nodes              []Node `json:"nodes"`
	Links              []Link `json:"links"`
}

// CatalogEntry describes one registered node type.
type CatalogEntry struct {
	IDName     string          `json:"bl_idname"`
	ClassName  string          `json:"py_class_name"`
	Name       string          `json:"name"`
	Label      string          `json:"label"`
	Inputs     []CatalogInput  `json:"inputs"`
	Outputs    []CatalogOutput `json:"outputs"`
	Properties []Property      `json:"properties"`
}

// CatalogInput summarizes an input socket of a catalog node.
type CatalogInput struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Identifier   string `json:"identifier"`
	DefaultValue any    `json:"default_value"`
}

// CatalogOutput summarizes an output socket of a catalog node.
type CatalogOutput struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// Catalog is the master catalog of every registered shader node type.
type Catalog struct {
	HostVersion string                  `json:"blender_version"`
	ShaderNodes map[string]CatalogEntry `json:"shader_nodes"`
}
