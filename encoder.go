package nbt

import (
	"io"

	"github.com/chaisql/nbt/internal/encoding"
	"github.com/chaisql/nbt/tag"
	"github.com/cockroachdb/errors"
)

// Encode returns the binary form of roots, written back to back.
func Encode(roots []Root) ([]byte, error) {
	return AppendRoots(make([]byte, 0, Size(roots)), roots)
}

// Size returns the number of bytes Encode produces for roots.
func Size(roots []Root) int {
	var n int
	for _, r := range roots {
		n += 1 + 2 + len(r.Name) + r.Compound.Size()
	}
	return n
}

// AppendRoots appends the binary form of roots to dst.
// Errors are reported at their offset in dst.
func AppendRoots(dst []byte, roots []Root) ([]byte, error) {
	var err error

	for _, r := range roots {
		dst, err = AppendRoot(dst, r)
		if err != nil {
			return nil, err
		}
	}

	return dst, nil
}

// AppendRoot appends the compound kind byte, the name and the compound
// payload of r to dst. A nil compound is written as an empty one.
func AppendRoot(dst []byte, r Root) ([]byte, error) {
	dst = append(dst, byte(tag.KindCompound))

	dst, err := encoding.AppendString(dst, r.Name)
	if err != nil {
		return nil, err
	}

	return r.Compound.AppendPayload(dst)
}

// An Encoder writes roots to an output stream.
type Encoder struct {
	w   io.Writer
	buf []byte
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes roots to the stream. Nothing is written if the roots cannot
// be encoded.
func (e *Encoder) Encode(roots ...Root) error {
	var err error

	e.buf, err = AppendRoots(e.buf[:0], roots)
	if err != nil {
		return err
	}

	_, err = e.w.Write(e.buf)
	return errors.WithStack(err)
}
