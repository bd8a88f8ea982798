// Package value converts host property and socket values into JSON-safe
// primitives.
//
// [Normalize] is shared by socket defaults and property values so a value is
// represented identically wherever it appears in an export.
package value

import (
	"fmt"
	"math"
	"reflect"

	"github.com/matzehuels/shadergraph/pkg/host"
)

// Normalize converts v into one of:
//   - nil
//   - bool, int64, float64, or string
//   - []any whose elements are all of the above scalar kinds
//   - a placeholder string for reference-typed values
//
// Values that cannot be represented return nil. Normalize is idempotent.
func Normalize(v any) any {
	out, _ := normalize(v)
	return out
}

// Representable reports whether v normalizes to a non-nil value, or is nil
// itself. It is false for values collapsed to null.
func Representable(v any) bool {
	_, ok := normalize(v)
	return ok
}

// Placeholder returns the string form used for reference-typed values:
// "<TypeName: name>" or "<TypeName>" when the reference has no name.
func Placeholder(r host.Ref) string {
	if name, ok := r.RefName(); ok {
		return fmt.Sprintf("<%s: %s>", r.TypeName(), name)
	}
	return fmt.Sprintf("<%s>", r.TypeName())
}

func normalize(v any) (any, bool) {
	if v == nil {
		return nil, true
	}
	if r, ok := v.(host.Ref); ok {
		if isNilPointer(r) {
			return nil, true
		}
		return Placeholder(r), true
	}
	if seq, ok := v.(host.Sequence); ok {
		return fromSequence(seq)
	}
	if s, ok := scalar(v); ok {
		return s, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, true
		}
		out := make([]any, rv.Len())
		for i := range out {
			s, ok := scalar(rv.Index(i).Interface())
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, true
		}
	}
	return nil, false
}

func fromSequence(seq host.Sequence) (any, bool) {
	out := make([]any, seq.Len())
	for i := range out {
		item, err := seq.At(i)
		if err != nil {
			return nil, false
		}
		s, ok := scalar(item)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

// scalar canonicalizes JSON-safe scalars. Integers widen to int64 and floats
// to float64; non-finite floats are not JSON-safe.
func scalar(v any) (any, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		return x, true
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return nil, false
		}
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return nil, false
		}
		return int64(x), true
	case float32:
		return finite(float64(x))
	case float64:
		return finite(x)
	}
	return nil, false
}

func finite(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
