package doc

import (
	"math"

	json "github.com/goccy/go-json"
)

// Float is a number that encodes as null when it is NaN or infinite, so a
// non-finite geometry or bound value never fails the whole document. A null
// decodes back to NaN.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Finite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Finite reports whether f is neither NaN nor infinite.
func (f Float) Finite() bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Vec2 converts a host pair.
func Vec2(v [2]float64) [2]Float {
	return [2]Float{Float(v[0]), Float(v[1])}
}

// Vec4 converts a host quadruple, such as an RGBA color.
func Vec4(v [4]float64) [4]Float {
	return [4]Float{Float(v[0]), Float(v[1]), Float(v[2]), Float(v[3])}
}
