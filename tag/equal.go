package tag

import (
	"math"

	"golang.org/x/exp/slices"
)

// Equal reports whether a and b are the same tree.
// Floating point values are compared by bit pattern, so NaN equals NaN.
// Compound fields must appear in the same order.
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case Float:
		y, ok := b.(Float)
		return ok && math.Float32bits(float32(x)) == math.Float32bits(float32(y))
	case Double:
		y, ok := b.(Double)
		return ok && math.Float64bits(float64(x)) == math.Float64bits(float64(y))
	case ByteArray:
		y, ok := b.(ByteArray)
		return ok && slices.Equal(x, y)
	case IntArray:
		y, ok := b.(IntArray)
		return ok && slices.Equal(x, y)
	case LongArray:
		y, ok := b.(LongArray)
		return ok && slices.Equal(x, y)
	case *List:
		y, ok := b.(*List)
		if !ok || x.Elem() != y.Elem() || x.Len() != y.Len() {
			return false
		}
		for i := 0; i < x.Len(); i++ {
			if !Equal(x.items[i], y.items[i]) {
				return false
			}
		}
		return true
	case *Compound:
		y, ok := b.(*Compound)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i := 0; i < x.Len(); i++ {
			if x.fields[i].Name != y.fields[i].Name || !Equal(x.fields[i].Value, y.fields[i].Value) {
				return false
			}
		}
		return true
	}

	return a == b
}
