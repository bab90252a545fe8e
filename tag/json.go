package tag

import (
	"encoding/json"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/chaisql/nbt/internal/encoding"
	"github.com/cockroachdb/errors"
)

// MarshalJSON returns the payload of t as typed JSON.
//
// Scalars are numbers, strings are strings and arrays are arrays of numbers.
// A string that is not valid UTF-8 is written as the array of its bytes,
// from 0 to 255, so that it reads back unchanged.
// Field names must be valid UTF-8.
// Non-finite floats are written as the strings "NaN", "+Inf" and "-Inf".
// A list is written as {"kind": "<element kind>", "items": [...]}.
// A compound is an object whose members are objects with one key naming the
// kind of the field:
//
//	{"HP": {"byte": -1}, "Tags": {"list": {"kind": "string", "items": ["a"]}}}
func MarshalJSON(t Tag) ([]byte, error) {
	return AppendJSON(nil, t)
}

// AppendJSON appends the typed JSON payload of t to dst.
func AppendJSON(dst []byte, t Tag) ([]byte, error) {
	switch v := t.(type) {
	case End:
		return append(dst, "null"...), nil
	case Byte:
		return strconv.AppendInt(dst, int64(v), 10), nil
	case Short:
		return strconv.AppendInt(dst, int64(v), 10), nil
	case Int:
		return strconv.AppendInt(dst, int64(v), 10), nil
	case Long:
		return strconv.AppendInt(dst, int64(v), 10), nil
	case Float:
		return appendJSONFloat(dst, float64(v), 32), nil
	case Double:
		return appendJSONFloat(dst, float64(v), 64), nil
	case ByteArray:
		return appendJSONInts(dst, v), nil
	case IntArray:
		return appendJSONInts(dst, v), nil
	case LongArray:
		return appendJSONInts(dst, v), nil
	case String:
		if !utf8.ValidString(string(v)) {
			return appendJSONInts(dst, []byte(v)), nil
		}
		return appendJSONString(dst, string(v))
	case *List:
		return v.appendJSON(dst)
	case *Compound:
		return v.appendJSON(dst)
	}

	return dst, errors.Wrapf(encoding.ErrEncoding, "cannot marshal %T", t)
}

// MarshalJSON implements the json.Marshaler interface.
func (l *List) MarshalJSON() ([]byte, error) {
	return l.appendJSON(nil)
}

func (l *List) appendJSON(dst []byte) ([]byte, error) {
	var err error

	dst = append(dst, `{"kind":"`...)
	dst = append(dst, l.Elem().String()...)
	dst = append(dst, `","items":[`...)
	for i := 0; i < l.Len(); i++ {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst, err = AppendJSON(dst, l.items[i])
		if err != nil {
			return dst, err
		}
	}

	return append(dst, "]}"...), nil
}

// MarshalJSON implements the json.Marshaler interface.
func (c *Compound) MarshalJSON() ([]byte, error) {
	return c.appendJSON(nil)
}

func (c *Compound) appendJSON(dst []byte) ([]byte, error) {
	var err error

	dst = append(dst, '{')
	for i := 0; i < c.Len(); i++ {
		f := c.fields[i]
		if f.Value == nil {
			return dst, errors.Wrapf(encoding.ErrEncoding, "field %q has no value", f.Name)
		}

		if i > 0 {
			dst = append(dst, ',')
		}
		dst, err = AppendJSONName(dst, f.Name)
		if err != nil {
			return dst, err
		}
		dst = append(dst, `:{"`...)
		dst = append(dst, f.Value.Kind().String()...)
		dst = append(dst, `":`...)
		dst, err = AppendJSON(dst, f.Value)
		if err != nil {
			return dst, err
		}
		dst = append(dst, '}')
	}

	return append(dst, '}'), nil
}

func appendJSONFloat(dst []byte, f float64, bitSize int) []byte {
	switch {
	case math.IsNaN(f):
		return append(dst, `"NaN"`...)
	case math.IsInf(f, 1):
		return append(dst, `"+Inf"`...)
	case math.IsInf(f, -1):
		return append(dst, `"-Inf"`...)
	}

	return strconv.AppendFloat(dst, f, 'g', -1, bitSize)
}

func appendJSONInts[T uint8 | int8 | int32 | int64](dst []byte, a []T) []byte {
	dst = append(dst, '[')
	for i, x := range a {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = strconv.AppendInt(dst, int64(x), 10)
	}
	return append(dst, ']')
}

// AppendJSONName appends name as a JSON string.
// Names that are not valid UTF-8 cannot be written losslessly and are rejected.
func AppendJSONName(dst []byte, name string) ([]byte, error) {
	if !utf8.ValidString(name) {
		return dst, errors.Wrapf(encoding.ErrEncoding, "name %q is not valid utf-8", name)
	}

	return appendJSONString(dst, name)
}

func appendJSONString(dst []byte, s string) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return dst, err
	}
	return append(dst, b...), nil
}
