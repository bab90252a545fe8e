// Package tag defines the values an NBT document is made of.
//
// A Tag is one of the thirteen types of this package, one per Kind.
// Scalars, strings and arrays are plain Go types and are built by conversion:
//
//	tag.Int(5)
//	tag.String("Steve")
//	tag.IntArray{1, 2, 3}
//
// Lists and compounds are built with NewList and NewCompound. All tags are
// values: a tree never shares children with another tree and holds no
// reference to the buffer it was decoded from.
package tag

import (
	"github.com/chaisql/nbt/internal/encoding"
	"github.com/cockroachdb/errors"
)

// A Tag is a decoded NBT value.
type Tag interface {
	// Kind returns the identifier written before the tag on the wire.
	Kind() Kind
	// Size returns the length of the payload in bytes.
	Size() int
	// AppendPayload appends the binary payload of the tag to dst.
	// Errors are reported at the offset len(dst) had when they were detected.
	AppendPayload(dst []byte) ([]byte, error)
}

// Serialize returns the payload of t.
func Serialize(t Tag) ([]byte, error) {
	if t == nil {
		return nil, errors.Wrap(encoding.ErrEncoding, "nil tag")
	}

	return t.AppendPayload(make([]byte, 0, t.Size()))
}

// End marks the end of a compound. It is only found in the element
// kind of empty lists.
type End struct{}

func (End) Kind() Kind                               { return KindEnd }
func (End) Size() int                                { return 0 }
func (End) AppendPayload(dst []byte) ([]byte, error) { return dst, nil }

type Byte int8

func (Byte) Kind() Kind { return KindByte }
func (Byte) Size() int  { return encoding.ByteWidth }
func (b Byte) AppendPayload(dst []byte) ([]byte, error) {
	return encoding.AppendInt8(dst, int8(b)), nil
}

type Short int16

func (Short) Kind() Kind { return KindShort }
func (Short) Size() int  { return encoding.ShortWidth }
func (s Short) AppendPayload(dst []byte) ([]byte, error) {
	return encoding.AppendInt16(dst, int16(s)), nil
}

type Int int32

func (Int) Kind() Kind { return KindInt }
func (Int) Size() int  { return encoding.IntWidth }
func (i Int) AppendPayload(dst []byte) ([]byte, error) {
	return encoding.AppendInt32(dst, int32(i)), nil
}

type Long int64

func (Long) Kind() Kind { return KindLong }
func (Long) Size() int  { return encoding.LongWidth }
func (l Long) AppendPayload(dst []byte) ([]byte, error) {
	return encoding.AppendInt64(dst, int64(l)), nil
}

type Float float32

func (Float) Kind() Kind { return KindFloat }
func (Float) Size() int  { return encoding.FloatWidth }
func (f Float) AppendPayload(dst []byte) ([]byte, error) {
	return encoding.AppendFloat32(dst, float32(f)), nil
}

type Double float64

func (Double) Kind() Kind { return KindDouble }
func (Double) Size() int  { return encoding.DoubleWidth }
func (d Double) AppendPayload(dst []byte) ([]byte, error) {
	return encoding.AppendFloat64(dst, float64(d)), nil
}

// ByteArray is a sequence of signed bytes. Its length prefix counts bytes.
type ByteArray []int8

func (ByteArray) Kind() Kind  { return KindByteArray }
func (a ByteArray) Size() int { return 4 + len(a) }
func (a ByteArray) AppendPayload(dst []byte) ([]byte, error) {
	return encoding.AppendArray(dst, a, encoding.AppendInt8)
}

// IntArray is a sequence of 4-byte integers. Its length prefix counts elements.
type IntArray []int32

func (IntArray) Kind() Kind  { return KindIntArray }
func (a IntArray) Size() int { return 4 + len(a)*encoding.IntWidth }
func (a IntArray) AppendPayload(dst []byte) ([]byte, error) {
	return encoding.AppendArray(dst, a, encoding.AppendInt32)
}

// LongArray is a sequence of 8-byte integers. Its length prefix counts elements.
type LongArray []int64

func (LongArray) Kind() Kind  { return KindLongArray }
func (a LongArray) Size() int { return 4 + len(a)*encoding.LongWidth }
func (a LongArray) AppendPayload(dst []byte) ([]byte, error) {
	return encoding.AppendArray(dst, a, encoding.AppendInt64)
}

// String holds UTF-8 text. Its length prefix counts bytes, not runes.
type String string

func (String) Kind() Kind  { return KindString }
func (s String) Size() int { return 2 + len(s) }
func (s String) AppendPayload(dst []byte) ([]byte, error) {
	return encoding.AppendString(dst, string(s))
}
