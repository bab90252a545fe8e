package encoding

import (
	"math"

	"golang.org/x/exp/constraints"
)

const (
	// MaxStringLen is the longest string, in bytes, a 2-byte prefix can describe.
	MaxStringLen = math.MaxUint16

	// MaxArrayLen is the largest element count a 4-byte prefix can describe.
	MaxArrayLen = math.MaxUint32
)

// AppendString writes the 2-byte length prefix followed by the bytes of s.
// The offset of a failure is len(dst).
func AppendString(dst []byte, s string) ([]byte, error) {
	if len(s) > MaxStringLen {
		return dst, Errorf(len(dst), ErrEncoding, "string of %d bytes exceeds %d", len(s), MaxStringLen)
	}

	dst = AppendUint16(dst, uint16(len(s)))
	return append(dst, s...), nil
}

// AppendLength writes a 4-byte element count.
func AppendLength(dst []byte, n int) ([]byte, error) {
	if uint64(n) > MaxArrayLen {
		return dst, Errorf(len(dst), ErrEncoding, "length %d exceeds %d", n, uint64(MaxArrayLen))
	}

	return AppendUint32(dst, uint32(n)), nil
}

// AppendArray writes a 4-byte element count followed by each element
// encoded with put.
func AppendArray[T constraints.Signed](dst []byte, a []T, put func([]byte, T) []byte) ([]byte, error) {
	dst, err := AppendLength(dst, len(a))
	if err != nil {
		return dst, err
	}

	for _, x := range a {
		dst = put(dst, x)
	}

	return dst, nil
}

// DecodeArray fills a slice of n elements of the given width from b.
func DecodeArray[T constraints.Signed](b []byte, n, width int, get func([]byte) T) []T {
	a := make([]T, n)
	for i := range a {
		a[i] = get(b[i*width:])
	}

	return a
}
