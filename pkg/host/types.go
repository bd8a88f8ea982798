package host

import "fmt"

// PropertyType tags a property descriptor with its value kind.
type PropertyType int

// Property types known to the host.
const (
	PropertyUnknown PropertyType = iota
	PropertyBoolean
	PropertyInt
	PropertyFloat
	PropertyString
	PropertyEnum
	PropertyPointer
	PropertyCollection
)

var propertyTypeNames = map[PropertyType]string{
	PropertyBoolean:    "BOOLEAN",
	PropertyInt:        "INT",
	PropertyFloat:      "FLOAT",
	PropertyString:     "STRING",
	PropertyEnum:       "ENUM",
	PropertyPointer:    "POINTER",
	PropertyCollection: "COLLECTION",
}

// String returns the host's tag for the type (e.g. "FLOAT").
func (t PropertyType) String() string {
	if s, ok := propertyTypeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsNumeric reports whether properties of this type carry hard bounds.
func (t PropertyType) IsNumeric() bool {
	return t == PropertyInt || t == PropertyFloat
}

// ParsePropertyType converts a host tag into a PropertyType.
func ParsePropertyType(s string) (PropertyType, error) {
	for t, name := range propertyTypeNames {
		if name == s {
			return t, nil
		}
	}
	return PropertyUnknown, fmt.Errorf("unknown property type %q", s)
}

// Property is a property descriptor.
type Property struct {
	Identifier  string
	Name        string
	Description string
	Type        PropertyType

	// ArrayLength is non-zero for fixed-size numeric arrays.
	ArrayLength int

	// HardMin and HardMax bound numeric properties. They are meaningful only
	// when Type.IsNumeric().
	HardMin float64
	HardMax float64

	// EnumItems lists the choices of an ENUM property.
	EnumItems []EnumItem
}

// EnumItem is one choice of an ENUM property.
type EnumItem struct {
	Identifier  string
	Name        string
	Description string
}

// Ref is a reference-typed value (an image, object, material, sub-graph, ...).
// References are never expanded when serialized.
type Ref interface {
	// TypeName returns the referenced type's name, e.g. "Image".
	TypeName() string

	// RefName returns the referenced item's own name, if it has one.
	RefName() (string, bool)
}

// Sequence is a host-side array that is not a Go slice.
type Sequence interface {
	Len() int
	At(i int) (any, error)
}

// ColorRamp is the state of a color-ramp node.
type ColorRamp struct {
	ColorMode        string
	Interpolation    string
	HueInterpolation string
	Elements         []RampElement
}

// RampElement is one color stop.
type RampElement struct {
	Position float64
	Color    [4]float64
	Alpha    float64
}

// CurveMapping is the state of an RGB-curve node.
type CurveMapping struct {
	Curves []Curve
}

// Curve is one channel of a curve mapping.
type Curve struct {
	Points []CurvePoint
}

// CurvePoint is a curve control point.
type CurvePoint struct {
	Location   [2]float64
	HandleType string
}

// Image is an image datablock referenced by an image-texture node.
type Image struct {
	Name       string
	Filepath   string
	Size       [2]int
	Colorspace string
}

// TypeName implements Ref.
func (im *Image) TypeName() string { return "Image" }

// RefName implements Ref.
func (im *Image) RefName() (string, bool) { return im.Name, im.Name != "" }
