package encoding

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Errors returned by the codec. They are always wrapped in an *Error
// carrying the offset at which the problem was detected.
var (
	// ErrFormat is returned when the bytes do not follow the NBT grammar
	// at the current position.
	ErrFormat = errors.New("malformed nbt")

	// ErrTruncated is returned when a read requires more bytes than the buffer holds.
	ErrTruncated = errors.New("unexpected end of buffer")

	// ErrEncoding is returned when a tag tree cannot be serialized.
	ErrEncoding = errors.New("invalid tag")

	// ErrMaxDepth is returned when compounds and lists are nested deeper than allowed.
	// It is also an ErrFormat.
	ErrMaxDepth = errors.Mark(errors.New("maximum nesting depth exceeded"), ErrFormat)
)

// Error describes a codec failure and where it happened.
// For decoding, Offset is a position in the input buffer.
// For encoding, it is a position in the output.
type Error struct {
	Offset int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v (offset %d)", e.Err, e.Offset)
}

// Unwrap returns the underlying error, which matches one of the sentinels
// of this package with errors.Is.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf returns an *Error at offset off, wrapping kind with a formatted message.
func Errorf(off int, kind error, format string, args ...any) error {
	return errors.WithStack(&Error{
		Offset: off,
		Err:    errors.Wrapf(kind, format, args...),
	})
}

// OffsetOf returns the offset recorded in err, or -1 if err is not a codec error.
func OffsetOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Offset
	}

	return -1
}
