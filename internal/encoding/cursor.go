package encoding

// A Cursor reads forward through an immutable buffer.
// The zero value reads from an empty buffer.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor returns a cursor positioned at off in b.
func NewCursor(b []byte, off int) Cursor {
	return Cursor{buf: b, off: off}
}

// Offset returns the position of the next byte to read.
func (c *Cursor) Offset() int {
	return c.off
}

// Len returns the size of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	if c.off < 0 || c.off >= len(c.buf) {
		return 0
	}
	return len(c.buf) - c.off
}

// Done reports whether every byte has been consumed.
func (c *Cursor) Done() bool {
	return c.off >= len(c.buf)
}

// Next returns the next n bytes and advances past them.
// The returned slice aliases the buffer.
// If fewer than n bytes remain, the cursor does not move.
func (c *Cursor) Next(n int) ([]byte, error) {
	if c.off < 0 {
		return nil, Errorf(0, ErrFormat, "negative offset %d", c.off)
	}
	if n < 0 || n > c.Remaining() {
		return nil, Errorf(c.off, ErrTruncated, "need %d bytes, %d left", n, c.Remaining())
	}

	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// Need returns a truncation error unless n more bytes are available.
// It is used to reject length prefixes before allocating for them.
func (c *Cursor) Need(n uint64) error {
	if n > uint64(c.Remaining()) {
		return Errorf(c.off, ErrTruncated, "need %d bytes, %d left", n, c.Remaining())
	}

	return nil
}

func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.Next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) ReadInt8() (int8, error) {
	b, err := c.Next(ByteWidth)
	if err != nil {
		return 0, err
	}
	return DecodeInt8(b), nil
}

func (c *Cursor) ReadInt16() (int16, error) {
	b, err := c.Next(ShortWidth)
	if err != nil {
		return 0, err
	}
	return DecodeInt16(b), nil
}

func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.Next(ShortWidth)
	if err != nil {
		return 0, err
	}
	return DecodeUint16(b), nil
}

func (c *Cursor) ReadInt32() (int32, error) {
	b, err := c.Next(IntWidth)
	if err != nil {
		return 0, err
	}
	return DecodeInt32(b), nil
}

func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.Next(IntWidth)
	if err != nil {
		return 0, err
	}
	return DecodeUint32(b), nil
}

func (c *Cursor) ReadInt64() (int64, error) {
	b, err := c.Next(LongWidth)
	if err != nil {
		return 0, err
	}
	return DecodeInt64(b), nil
}

func (c *Cursor) ReadFloat32() (float32, error) {
	b, err := c.Next(FloatWidth)
	if err != nil {
		return 0, err
	}
	return DecodeFloat32(b), nil
}

func (c *Cursor) ReadFloat64() (float64, error) {
	b, err := c.Next(DoubleWidth)
	if err != nil {
		return 0, err
	}
	return DecodeFloat64(b), nil
}

// ReadString reads a 2-byte length prefix and that many bytes.
// The bytes are copied so the result does not retain the buffer.
func (c *Cursor) ReadString() (string, error) {
	l, err := c.ReadUint16()
	if err != nil {
		return "", err
	}

	b, err := c.Next(int(l))
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// ReadLength reads a 4-byte element count and checks that count elements
// of at least width bytes each can fit in the remaining bytes.
func (c *Cursor) ReadLength(width int) (int, error) {
	l, err := c.ReadUint32()
	if err != nil {
		return 0, err
	}

	if err := c.Need(uint64(l) * uint64(width)); err != nil {
		return 0, err
	}

	return int(l), nil
}
