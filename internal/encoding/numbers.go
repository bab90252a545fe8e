package encoding

import (
	"encoding/binary"
	"math"
)

// Widths of the fixed-size payloads.
const (
	ByteWidth   = 1
	ShortWidth  = 2
	IntWidth    = 4
	LongWidth   = 8
	FloatWidth  = 4
	DoubleWidth = 8
)

func AppendInt8(dst []byte, n int8) []byte {
	return append(dst, byte(n))
}

func AppendInt16(dst []byte, n int16) []byte {
	return binary.LittleEndian.AppendUint16(dst, uint16(n))
}

func AppendUint16(dst []byte, n uint16) []byte {
	return binary.LittleEndian.AppendUint16(dst, n)
}

func AppendInt32(dst []byte, n int32) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(n))
}

func AppendUint32(dst []byte, n uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, n)
}

func AppendInt64(dst []byte, n int64) []byte {
	return binary.LittleEndian.AppendUint64(dst, uint64(n))
}

func AppendFloat32(dst []byte, x float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(x))
}

func AppendFloat64(dst []byte, x float64) []byte {
	return binary.LittleEndian.AppendUint64(dst, math.Float64bits(x))
}

// The Decode functions expect b to hold at least the width of the value.

func DecodeInt8(b []byte) int8 {
	return int8(b[0])
}

func DecodeInt16(b []byte) int16 {
	return int16(binary.LittleEndian.Uint16(b))
}

func DecodeUint16(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

func DecodeInt32(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

func DecodeUint32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

func DecodeInt64(b []byte) int64 {
	return int64(binary.LittleEndian.Uint64(b))
}

func DecodeFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func DecodeFloat64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
