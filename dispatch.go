package nbt

import (
	"github.com/chaisql/nbt/internal/encoding"
	"github.com/chaisql/nbt/tag"
)

// ReadTag reads the payload of a tag of kind k.
// Reading an End payload consumes nothing.
func (d *Decoder) ReadTag(k tag.Kind) (tag.Tag, error) {
	switch k {
	case tag.KindEnd:
		return tag.End{}, nil
	case tag.KindByte:
		x, err := d.cur.ReadInt8()
		if err != nil {
			return nil, err
		}
		return tag.Byte(x), nil
	case tag.KindShort:
		x, err := d.cur.ReadInt16()
		if err != nil {
			return nil, err
		}
		return tag.Short(x), nil
	case tag.KindInt:
		x, err := d.cur.ReadInt32()
		if err != nil {
			return nil, err
		}
		return tag.Int(x), nil
	case tag.KindLong:
		x, err := d.cur.ReadInt64()
		if err != nil {
			return nil, err
		}
		return tag.Long(x), nil
	case tag.KindFloat:
		x, err := d.cur.ReadFloat32()
		if err != nil {
			return nil, err
		}
		return tag.Float(x), nil
	case tag.KindDouble:
		x, err := d.cur.ReadFloat64()
		if err != nil {
			return nil, err
		}
		return tag.Double(x), nil
	case tag.KindByteArray:
		a, err := readArray(&d.cur, encoding.ByteWidth, encoding.DecodeInt8)
		if err != nil {
			return nil, err
		}
		return tag.ByteArray(a), nil
	case tag.KindString:
		s, err := d.cur.ReadString()
		if err != nil {
			return nil, err
		}
		return tag.String(s), nil
	case tag.KindList:
		return d.ReadList()
	case tag.KindCompound:
		return d.ReadCompound()
	case tag.KindIntArray:
		a, err := readArray(&d.cur, encoding.IntWidth, encoding.DecodeInt32)
		if err != nil {
			return nil, err
		}
		return tag.IntArray(a), nil
	case tag.KindLongArray:
		a, err := readArray(&d.cur, encoding.LongWidth, encoding.DecodeInt64)
		if err != nil {
			return nil, err
		}
		return tag.LongArray(a), nil
	}

	return nil, encoding.Errorf(d.cur.Offset(), ErrFormat, "undefined tag kind %d", uint8(k))
}

func readArray[T int8 | int32 | int64](c *encoding.Cursor, width int, get func([]byte) T) ([]T, error) {
	n, err := c.ReadLength(width)
	if err != nil {
		return nil, err
	}

	b, err := c.Next(n * width)
	if err != nil {
		return nil, err
	}

	return encoding.DecodeArray(b, n, width, get), nil
}
