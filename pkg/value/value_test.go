package value

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/shadergraph/pkg/host"
)

type ref struct {
	typ, name string
}

func (r ref) TypeName() string { return r.typ }
func (r ref) RefName() (string, bool) {
	return r.name, r.name != ""
}

type seq struct {
	items []any
	err   error
}

func (s seq) Len() int { return len(s.items) }
func (s seq) At(i int) (any, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items[i], nil
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"Nil", nil, nil},
		{"Bool", true, true},
		{"Int", 3, int64(3)},
		{"Int32", int32(-7), int64(-7)},
		{"Float32", float32(0.5), 0.5},
		{"Float64", 1.25, 1.25},
		{"String", "Linear", "Linear"},
		{"NaN", math.NaN(), nil},
		{"Inf", math.Inf(1), nil},
		{"FloatArray", [4]float32{1, 0.5, 0.25, 1}, []any{1.0, 0.5, 0.25, 1.0}},
		{"IntSlice", []int{1, 2}, []any{int64(1), int64(2)}},
		{"NilSlice", []float64(nil), nil},
		{"NestedSlice", [][]float64{{1}, {2}}, nil},
		{"MixedSlice", []any{1, "a", true}, []any{int64(1), "a", true}},
		{"SliceWithStruct", []any{1, struct{}{}}, nil},
		{"NamedRef", ref{"Image", "wood.png"}, "<Image: wood.png>"},
		{"UnnamedRef", ref{"CurveMapping", ""}, "<CurveMapping>"},
		{"NilImage", (*host.Image)(nil), nil},
		{"Image", &host.Image{Name: "brick"}, "<Image: brick>"},
		{"Sequence", seq{items: []any{float32(1), float32(2)}}, []any{1.0, 2.0}},
		{"FailingSequence", seq{items: []any{1}, err: errors.New("boom")}, nil},
		{"Map", map[string]int{"a": 1}, nil},
		{"Struct", struct{ X int }{1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []any{
		nil,
		false,
		42,
		float32(0.8),
		"text",
		[3]float64{0, 1, 2},
		[]any{int8(1), "x"},
		ref{"Object", "Cube"},
		ref{"ColorMapping", ""},
		struct{}{},
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Normalize not idempotent for %v: %#v then %#v", in, once, twice)
		}
	}
}

func TestRepresentable(t *testing.T) {
	if !Representable(nil) {
		t.Error("nil should be representable")
	}
	if !Representable([]float64{1}) {
		t.Error("float slice should be representable")
	}
	if Representable(math.NaN()) {
		t.Error("NaN should not be representable")
	}
	if Representable(map[string]any{}) {
		t.Error("map should not be representable")
	}
}

func TestPlaceholder(t *testing.T) {
	if got := Placeholder(ref{"NodeTree", "Group"}); got != "<NodeTree: Group>" {
		t.Errorf("Placeholder = %q", got)
	}
	if got := Placeholder(ref{"Texture", ""}); got != "<Texture>" {
		t.Errorf("Placeholder = %q", got)
	}
}
