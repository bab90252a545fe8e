package nbt

import (
	"github.com/chaisql/nbt/internal/encoding"
)

var (
	// ErrFormat is returned when the input does not follow the NBT grammar,
	// for example when a root tag is not a compound or a kind id is undefined.
	ErrFormat = encoding.ErrFormat

	// ErrTruncated is returned when a length prefix or a compound runs past
	// the end of the input.
	ErrTruncated = encoding.ErrTruncated

	// ErrEncoding is returned when a tree cannot be serialized, for example a
	// list holding tags of different kinds.
	ErrEncoding = encoding.ErrEncoding

	// ErrMaxDepth is returned when the input nests compounds and lists deeper
	// than DecodeOptions.MaxDepth. It also matches ErrFormat.
	ErrMaxDepth = encoding.ErrMaxDepth
)

// Error is the type of all the errors returned by Decode and Encode.
// It records the byte offset at which the failure was detected.
//
//	var e *nbt.Error
//	if errors.As(err, &e) {
//		fmt.Println(e.Offset)
//	}
type Error = encoding.Error

// OffsetOf returns the offset recorded in err, or -1 if err does not come
// from the codec.
func OffsetOf(err error) int {
	return encoding.OffsetOf(err)
}
