package tag

import (
	"math"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
)

// ErrInvalidJSON is returned when typed JSON does not describe a tag.
var ErrInvalidJSON = errors.New("invalid typed json")

// ParseJSON parses the typed JSON payload of a tag of kind k,
// as written by MarshalJSON.
// Compound fields are returned in the order they appear in data.
func ParseJSON(k Kind, data []byte) (Tag, error) {
	v, dt, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidJSON, "%v", err)
	}

	return parseValue(k, v, dt)
}

// ParseCompoundJSON parses a typed JSON object into a compound.
func ParseCompoundJSON(data []byte) (*Compound, error) {
	t, err := ParseJSON(KindCompound, data)
	if err != nil {
		return nil, err
	}
	return t.(*Compound), nil
}

func parseValue(k Kind, data []byte, dt jsonparser.ValueType) (Tag, error) {
	switch k {
	case KindEnd:
		if dt != jsonparser.Null {
			return nil, typeError(k, dt)
		}
		return End{}, nil
	case KindByte:
		x, err := parseInt(k, data, dt, math.MinInt8, math.MaxInt8)
		return Byte(x), err
	case KindShort:
		x, err := parseInt(k, data, dt, math.MinInt16, math.MaxInt16)
		return Short(x), err
	case KindInt:
		x, err := parseInt(k, data, dt, math.MinInt32, math.MaxInt32)
		return Int(x), err
	case KindLong:
		x, err := parseInt(k, data, dt, math.MinInt64, math.MaxInt64)
		return Long(x), err
	case KindFloat:
		f, err := parseFloat(k, data, dt, 32)
		return Float(f), err
	case KindDouble:
		f, err := parseFloat(k, data, dt, 64)
		return Double(f), err
	case KindByteArray:
		a, err := parseInts[int8](k, data, dt, math.MinInt8, math.MaxInt8)
		return ByteArray(a), err
	case KindIntArray:
		a, err := parseInts[int32](k, data, dt, math.MinInt32, math.MaxInt32)
		return IntArray(a), err
	case KindLongArray:
		a, err := parseInts[int64](k, data, dt, math.MinInt64, math.MaxInt64)
		return LongArray(a), err
	case KindString:
		if dt == jsonparser.Array {
			a, err := parseInts[uint8](k, data, dt, 0, math.MaxUint8)
			return String(a), err
		}
		if dt != jsonparser.String {
			return nil, typeError(k, dt)
		}
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidJSON, "%v", err)
		}
		return String(s), nil
	case KindList:
		return parseList(data, dt)
	case KindCompound:
		return parseCompound(data, dt)
	}

	return nil, errors.Wrapf(ErrInvalidJSON, "invalid kind %d", uint8(k))
}

func typeError(k Kind, dt jsonparser.ValueType) error {
	return errors.Wrapf(ErrInvalidJSON, "cannot read a %s from a json %s", k, dt)
}

func parseInt(k Kind, data []byte, dt jsonparser.ValueType, min, max int64) (int64, error) {
	if dt != jsonparser.Number {
		return 0, typeError(k, dt)
	}

	x, err := jsonparser.ParseInt(data)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidJSON, "%s %s: %v", k, data, err)
	}
	if x < min || x > max {
		return 0, errors.Wrapf(ErrInvalidJSON, "%d out of range for %s", x, k)
	}

	return x, nil
}

func parseFloat(k Kind, data []byte, dt jsonparser.ValueType, bitSize int) (float64, error) {
	switch dt {
	case jsonparser.Number:
		f, err := strconv.ParseFloat(string(data), bitSize)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidJSON, "%s %s: %v", k, data, err)
		}
		return f, nil
	case jsonparser.String:
		switch string(data) {
		case "NaN":
			return math.NaN(), nil
		case "+Inf", "Inf":
			return math.Inf(1), nil
		case "-Inf":
			return math.Inf(-1), nil
		}
		return 0, errors.Wrapf(ErrInvalidJSON, "invalid %s %q", k, data)
	}

	return 0, typeError(k, dt)
}

func parseInts[T uint8 | int8 | int32 | int64](k Kind, data []byte, dt jsonparser.ValueType, min, max int64) ([]T, error) {
	if dt != jsonparser.Array {
		return nil, typeError(k, dt)
	}

	a := []T{}
	var perr error
	_, err := jsonparser.ArrayEach(data, func(v []byte, vt jsonparser.ValueType, _ int, err error) {
		if perr != nil {
			return
		}
		if err != nil {
			perr = err
			return
		}

		var x int64
		x, perr = parseInt(k, v, vt, min, max)
		a = append(a, T(x))
	})
	if err == nil {
		err = perr
	}
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidJSON, "%s: %v", k, err)
	}

	return a, nil
}

func parseList(data []byte, dt jsonparser.ValueType) (*List, error) {
	if dt != jsonparser.Object {
		return nil, typeError(KindList, dt)
	}

	name, err := jsonparser.GetString(data, "kind")
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidJSON, "list without element kind: %v", err)
	}
	elem, err := ParseKind(name)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidJSON, "%v", err)
	}

	var items []Tag
	var perr error
	_, err = jsonparser.ArrayEach(data, func(v []byte, vt jsonparser.ValueType, _ int, err error) {
		if perr != nil {
			return
		}
		if err != nil {
			perr = err
			return
		}

		var it Tag
		it, perr = parseValue(elem, v, vt)
		items = append(items, it)
	}, "items")
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		err = nil
	}
	if err == nil {
		err = perr
	}
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidJSON, "list: %v", err)
	}

	l, err := NewList(elem, items...)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidJSON, "%v", err)
	}
	return l, nil
}

func parseCompound(data []byte, dt jsonparser.ValueType) (*Compound, error) {
	if dt != jsonparser.Object {
		return nil, typeError(KindCompound, dt)
	}

	var fields []Field
	err := jsonparser.ObjectEach(data, func(key []byte, v []byte, vt jsonparser.ValueType, _ int) error {
		if vt != jsonparser.Object {
			return errors.Wrapf(ErrInvalidJSON, "field %q must be an object naming its kind", key)
		}

		t, err := parseMember(v)
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}

		fields = append(fields, Field{Name: string(key), Value: t})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Compound{fields: fields}, nil
}

// parseMember parses {"<kind>": payload}.
func parseMember(data []byte) (Tag, error) {
	var t Tag
	err := jsonparser.ObjectEach(data, func(key []byte, v []byte, vt jsonparser.ValueType, _ int) error {
		if t != nil {
			return errors.Wrap(ErrInvalidJSON, "more than one kind")
		}

		k, err := ParseKind(string(key))
		if err != nil {
			return errors.Wrapf(ErrInvalidJSON, "%v", err)
		}
		if k == KindEnd {
			return errors.Wrap(ErrInvalidJSON, "a field cannot be of kind end")
		}

		t, err = parseValue(k, v, vt)
		return err
	})
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.Wrap(ErrInvalidJSON, "missing kind")
	}

	return t, nil
}
