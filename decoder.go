package nbt

import (
	"github.com/chaisql/nbt/internal/encoding"
	"github.com/chaisql/nbt/tag"
)

// DefaultMaxDepth is the nesting limit used when DecodeOptions.MaxDepth is zero.
const DefaultMaxDepth = 512

// DecodeOptions configures a Decoder.
type DecodeOptions struct {
	// Offset at which decoding starts.
	Offset int

	// MaxDepth bounds how deeply compounds and lists can be nested.
	// A root compound is at depth 1.
	// Zero means DefaultMaxDepth, a negative value disables the limit.
	MaxDepth int
}

// A Root is a top-level named compound.
type Root struct {
	Name     string
	Compound *tag.Compound
}

// A Decoder reads tags from a buffer. It keeps a cursor that only moves
// forward, so a failed read leaves it where the failure was detected.
// A Decoder must not be used concurrently, but any number of decoders can
// read the same buffer.
type Decoder struct {
	cur      encoding.Cursor
	maxDepth int
	depth    int
}

// NewDecoder returns a decoder reading b. opts may be nil.
func NewDecoder(b []byte, opts *DecodeOptions) *Decoder {
	d := Decoder{
		maxDepth: DefaultMaxDepth,
	}

	var off int
	if opts != nil {
		off = opts.Offset
		if opts.MaxDepth != 0 {
			d.maxDepth = opts.MaxDepth
		}
	}

	d.cur = encoding.NewCursor(b, off)
	return &d
}

// Decode reads every root compound of b.
func Decode(b []byte) ([]Root, error) {
	return NewDecoder(b, nil).ReadAll()
}

// DecodeWithOptions is like Decode but allows to configure the decoder.
func DecodeWithOptions(b []byte, opts *DecodeOptions) ([]Root, error) {
	return NewDecoder(b, opts).ReadAll()
}

// Offset returns the position of the next byte to read.
func (d *Decoder) Offset() int {
	return d.cur.Offset()
}

// Remaining returns the number of bytes left to read.
func (d *Decoder) Remaining() int {
	return d.cur.Remaining()
}

// ReadAll reads root compounds until the end of the buffer.
// A buffer may hold zero or more roots written back to back.
func (d *Decoder) ReadAll() ([]Root, error) {
	var roots []Root

	for !d.cur.Done() {
		r, err := d.ReadRoot()
		if err != nil {
			return nil, err
		}

		roots = append(roots, r)
	}

	return roots, nil
}

// ReadRoot reads one root: the compound kind byte, a name and a compound payload.
func (d *Decoder) ReadRoot() (Root, error) {
	off := d.cur.Offset()
	k, err := d.cur.ReadByte()
	if err != nil {
		return Root{}, err
	}

	if tag.Kind(k) != tag.KindCompound {
		return Root{}, encoding.Errorf(off, ErrFormat, "expected a root compound, got %s", tag.Kind(k))
	}

	name, err := d.cur.ReadString()
	if err != nil {
		return Root{}, err
	}

	c, err := d.ReadCompound()
	if err != nil {
		return Root{}, err
	}

	return Root{Name: name, Compound: c}, nil
}

// ReadString reads a string payload.
func (d *Decoder) ReadString() (string, error) {
	return d.cur.ReadString()
}

// ReadCompound reads a compound payload: named tags up to the End byte.
// Fields are returned in the order they were read.
func (d *Decoder) ReadCompound() (*tag.Compound, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	var fields []tag.Field
	for {
		off := d.cur.Offset()
		b, err := d.cur.ReadByte()
		if err != nil {
			return nil, err
		}

		k := tag.Kind(b)
		if k == tag.KindEnd {
			break
		}
		if !k.Valid() {
			return nil, encoding.Errorf(off, ErrFormat, "undefined tag kind %d", b)
		}

		name, err := d.cur.ReadString()
		if err != nil {
			return nil, err
		}

		v, err := d.ReadTag(k)
		if err != nil {
			return nil, err
		}

		fields = append(fields, tag.F(name, v))
	}

	return tag.NewCompound(fields...), nil
}

// ReadList reads a list payload: the element kind, the element count and
// that many payloads.
func (d *Decoder) ReadList() (*tag.List, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	off := d.cur.Offset()
	b, err := d.cur.ReadByte()
	if err != nil {
		return nil, err
	}

	elem := tag.Kind(b)
	if !elem.Valid() {
		return nil, encoding.Errorf(off, ErrFormat, "undefined list element kind %d", b)
	}

	n, err := d.cur.ReadLength(elem.MinSize())
	if err != nil {
		return nil, err
	}
	if elem == tag.KindEnd && n > 0 {
		return nil, encoding.Errorf(off, ErrFormat, "list of end with %d elements", n)
	}

	items := make([]tag.Tag, n)
	for i := range items {
		items[i], err = d.ReadTag(elem)
		if err != nil {
			return nil, err
		}
	}

	return tag.NewList(elem, items...)
}

func (d *Decoder) enter() error {
	if d.maxDepth > 0 && d.depth >= d.maxDepth {
		return encoding.Errorf(d.cur.Offset(), ErrMaxDepth, "depth %d exceeds %d", d.depth+1, d.maxDepth)
	}

	d.depth++
	return nil
}

func (d *Decoder) leave() {
	d.depth--
}
