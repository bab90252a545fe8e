package nbt_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/chaisql/nbt"
	"github.com/chaisql/nbt/internal/testutil"
	"github.com/chaisql/nbt/tag"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestScalarRoundTrip(t *testing.T) {
	roots := []nbt.Root{{
		Name: "Data",
		Compound: tag.NewCompound(
			tag.F("HP", tag.Byte(-1)),
			tag.F("Age", tag.Short(300)),
		),
	}}

	b, err := nbt.Encode(roots)
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x0a, 0x04, 0x00, 'D', 'a', 't', 'a',
		0x01, 0x02, 0x00, 'H', 'P', 0xff,
		0x02, 0x03, 0x00, 'A', 'g', 'e', 0x2c, 0x01,
		0x00,
	}, b)
	require.Equal(t, len(b), nbt.Size(roots))

	got, err := nbt.Decode(b)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Data", got[0].Name)
	require.Equal(t, []string{"HP", "Age"}, got[0].Compound.Names())

	hp, _ := got[0].Compound.Get("HP")
	require.Equal(t, tag.Byte(-1), hp)
	age, _ := got[0].Compound.Get("Age")
	require.Equal(t, tag.Short(300), age)
}

func TestNestedListOfCompounds(t *testing.T) {
	roots := testutil.MakeRoots(t, `[{"name": "", "value": {
		"Items": {"list": {"kind": "compound", "items": [
			{"id": {"int": 5}},
			{"id": {"int": 7}}
		]}}
	}}]`)

	b, err := nbt.Encode(roots)
	require.NoError(t, err)

	got, err := nbt.Decode(b)
	require.NoError(t, err)
	testutil.RequireRootsEqual(t, roots, got)

	v, ok := got[0].Compound.Get("Items")
	require.True(t, ok)
	items := v.(*tag.List)
	require.Equal(t, tag.KindCompound, items.Elem())
	require.Equal(t, 2, items.Len())

	for i, want := range []tag.Int{5, 7} {
		id, _ := items.At(i).(*tag.Compound).Get("id")
		require.Equal(t, want, id)
	}
}

func TestEmptyRoot(t *testing.T) {
	b, err := nbt.Encode([]nbt.Root{{Compound: tag.NewCompound()}})
	require.NoError(t, err)
	require.Equal(t, []byte{0x0a, 0x00, 0x00, 0x00}, b)

	// a nil compound is written as an empty one
	b2, err := nbt.Encode([]nbt.Root{{}})
	require.NoError(t, err)
	require.Equal(t, b, b2)

	roots, err := nbt.Decode(b)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	require.Equal(t, "", roots[0].Name)
	require.Equal(t, 0, roots[0].Compound.Len())
}

func TestDecodeEmptyBuffer(t *testing.T) {
	roots, err := nbt.Decode(nil)
	require.NoError(t, err)
	require.Empty(t, roots)

	b, err := nbt.Encode(nil)
	require.NoError(t, err)
	require.Empty(t, b)
}

// allKinds holds one field of every kind, with edge values.
func allKinds() *tag.Compound {
	return tag.NewCompound(
		tag.F("byte", tag.Byte(math.MinInt8)),
		tag.F("short", tag.Short(math.MaxInt16)),
		tag.F("int", tag.Int(math.MinInt32)),
		tag.F("long", tag.Long(math.MaxInt64)),
		tag.F("float", tag.Float(float32(math.Inf(1)))),
		tag.F("double", tag.Double(math.NaN())),
		tag.F("byte-array", tag.ByteArray{-128, 0, 127}),
		tag.F("string", tag.String("héllo wörld")),
		tag.F("list", tag.MustList(tag.KindList,
			tag.MustList(tag.KindEnd),
			tag.MustList(tag.KindLong, tag.Long(-1)),
		)),
		tag.F("compound", tag.NewCompound(
			tag.F("nested", tag.NewCompound()),
		)),
		tag.F("int-array", tag.IntArray{math.MaxInt32, -1}),
		tag.F("long-array", tag.LongArray{math.MinInt64}),
		tag.F("", tag.String("")),
	)
}

func TestRoundTripAllKinds(t *testing.T) {
	roots := []nbt.Root{
		{Name: "first", Compound: allKinds()},
		{Name: "second", Compound: tag.NewCompound(tag.F("z", tag.Byte(1)), tag.F("a", tag.Byte(2)))},
	}

	b, err := nbt.Encode(roots)
	require.NoError(t, err)
	require.Equal(t, len(b), nbt.Size(roots))

	got, err := nbt.Decode(b)
	require.NoError(t, err)
	testutil.RequireRootsEqual(t, roots, got)

	// encode(decode(b)) reproduces b
	b2, err := nbt.Encode(got)
	require.NoError(t, err)
	require.Equal(t, b, b2)
}

func TestFieldOrderPreserved(t *testing.T) {
	names := []string{"zeta", "alpha", "mu", "beta", "omega", "a", "b"}

	var fields []tag.Field
	for i, n := range names {
		fields = append(fields, tag.F(n, tag.Int(int32(i))))
	}

	b, err := nbt.Encode([]nbt.Root{{Name: "r", Compound: tag.NewCompound(fields...)}})
	require.NoError(t, err)

	got, err := nbt.Decode(b)
	require.NoError(t, err)
	require.Equal(t, names, got[0].Compound.Names())
}

func TestDecodeTruncated(t *testing.T) {
	b, err := nbt.Encode([]nbt.Root{{Name: "root", Compound: allKinds()}})
	require.NoError(t, err)

	for i := 1; i < len(b); i++ {
		_, err := nbt.Decode(b[:i])
		testutil.ErrorIs(t, err, nbt.ErrTruncated)
		require.LessOrEqual(t, nbt.OffsetOf(err), i, "cut at %d", i)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  []byte
		err    error
		offset int
		msg    string
	}{
		{"root is not a compound", []byte{0x09, 0x00, 0x00}, nbt.ErrFormat, 0, "expected a root compound, got list"},
		{"second root is not a compound", []byte{0x0a, 0x00, 0x00, 0x00, 0x01}, nbt.ErrFormat, 4, "expected a root compound, got byte"},
		{"undefined field kind", []byte{0x0a, 0x00, 0x00, 0x0d, 0x00, 0x00}, nbt.ErrFormat, 3, "undefined tag kind 13"},
		{"undefined list element kind", []byte{0x0a, 0x00, 0x00, 0x09, 0x01, 0x00, 'l', 0xff, 0, 0, 0, 0, 0x00}, nbt.ErrFormat, 7, "undefined list element kind 255"},
		{"list of end with elements", []byte{0x0a, 0x00, 0x00, 0x09, 0x01, 0x00, 'l', 0x00, 1, 0, 0, 0, 0x00}, nbt.ErrFormat, 7, "list of end"},
		{"missing end byte", []byte{0x0a, 0x00, 0x00, 0x01, 0x01, 0x00, 'b', 0x05}, nbt.ErrTruncated, 8, ""},
		{"string longer than buffer", []byte{0x0a, 0x05, 0x00, 'a'}, nbt.ErrTruncated, 3, ""},
		{"huge array prefix", []byte{0x0a, 0x00, 0x00, 0x0c, 0x01, 0x00, 'a', 0xff, 0xff, 0xff, 0x7f, 0x00}, nbt.ErrTruncated, 11, ""},
		{"huge list prefix", []byte{0x0a, 0x00, 0x00, 0x09, 0x01, 0x00, 'a', 0x0a, 0xff, 0xff, 0xff, 0xff, 0x00}, nbt.ErrTruncated, 12, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			roots, err := nbt.Decode(test.input)
			require.Nil(t, roots)
			testutil.ErrorAt(t, err, test.err, test.offset)
			if test.msg != "" {
				require.ErrorContains(t, err, test.msg)
			}

			var e *nbt.Error
			require.True(t, errors.As(err, &e))
			require.Equal(t, test.offset, e.Offset)
		})
	}
}

func nested(depth int) []byte {
	// root compound, then depth-1 nested compounds named "c"
	b := []byte{0x0a, 0x00, 0x00}
	for i := 1; i < depth; i++ {
		b = append(b, 0x0a, 0x01, 0x00, 'c')
	}
	return append(b, bytes.Repeat([]byte{0x00}, depth)...)
}

func TestMaxDepth(t *testing.T) {
	_, err := nbt.Decode(nested(nbt.DefaultMaxDepth))
	require.NoError(t, err)

	_, err = nbt.Decode(nested(nbt.DefaultMaxDepth + 1))
	testutil.ErrorIs(t, err, nbt.ErrMaxDepth)
	testutil.ErrorIs(t, err, nbt.ErrFormat)

	_, err = nbt.DecodeWithOptions(nested(3), &nbt.DecodeOptions{MaxDepth: 2})
	testutil.ErrorAt(t, err, nbt.ErrMaxDepth, 11)

	_, err = nbt.DecodeWithOptions(nested(nbt.DefaultMaxDepth+10), &nbt.DecodeOptions{MaxDepth: -1})
	require.NoError(t, err)

	// lists count toward the depth too
	lists := []byte{0x0a, 0x00, 0x00, 0x09, 0x01, 0x00, 'l', 0x09, 1, 0, 0, 0, 0x00, 0, 0, 0, 0, 0x00}
	_, err = nbt.DecodeWithOptions(lists, &nbt.DecodeOptions{MaxDepth: 3})
	require.NoError(t, err)
	_, err = nbt.DecodeWithOptions(lists, &nbt.DecodeOptions{MaxDepth: 2})
	testutil.ErrorIs(t, err, nbt.ErrMaxDepth)
}

func TestDecoder(t *testing.T) {
	b, err := nbt.Encode([]nbt.Root{
		{Name: "a", Compound: tag.NewCompound(tag.F("x", tag.Byte(1)))},
		{Name: "b", Compound: tag.NewCompound()},
	})
	require.NoError(t, err)

	t.Run("ReadRoot", func(t *testing.T) {
		d := nbt.NewDecoder(b, nil)

		r, err := d.ReadRoot()
		require.NoError(t, err)
		require.Equal(t, "a", r.Name)
		require.Equal(t, 10, d.Offset())
		require.Equal(t, 5, d.Remaining())

		r, err = d.ReadRoot()
		require.NoError(t, err)
		require.Equal(t, "b", r.Name)
		require.Equal(t, 0, d.Remaining())

		_, err = d.ReadRoot()
		testutil.ErrorIs(t, err, nbt.ErrTruncated)
	})

	t.Run("Offset", func(t *testing.T) {
		prefixed := append([]byte{0xde, 0xad}, b...)

		roots, err := nbt.DecodeWithOptions(prefixed, &nbt.DecodeOptions{Offset: 2})
		require.NoError(t, err)
		require.Len(t, roots, 2)

		_, err = nbt.DecodeWithOptions(prefixed, nil)
		testutil.ErrorAt(t, err, nbt.ErrFormat, 0)

		_, err = nbt.DecodeWithOptions(prefixed, &nbt.DecodeOptions{Offset: -1})
		testutil.ErrorAt(t, err, nbt.ErrFormat, 0)

		_, err = nbt.DecodeWithOptions(prefixed, &nbt.DecodeOptions{Offset: len(prefixed) + 3})
		require.NoError(t, err)
	})

	t.Run("ReadTag", func(t *testing.T) {
		d := nbt.NewDecoder([]byte{0x03, 0x00, 'a', 'b', 'c', 0x2a, 0, 0, 0}, nil)

		s, err := d.ReadTag(tag.KindString)
		require.NoError(t, err)
		require.Equal(t, tag.String("abc"), s)

		v, err := d.ReadTag(tag.KindInt)
		require.NoError(t, err)
		require.Equal(t, tag.Int(42), v)

		v, err = d.ReadTag(tag.KindEnd)
		require.NoError(t, err)
		require.Equal(t, tag.End{}, v)

		_, err = d.ReadTag(tag.Kind(99))
		testutil.ErrorAt(t, err, nbt.ErrFormat, 9)
	})
}

func TestDecodeDoesNotRetainBuffer(t *testing.T) {
	b, err := nbt.Encode([]nbt.Root{{Name: "n", Compound: tag.NewCompound(
		tag.F("s", tag.String("value")),
		tag.F("a", tag.ByteArray{1, 2, 3}),
	)}})
	require.NoError(t, err)

	roots, err := nbt.Decode(b)
	require.NoError(t, err)

	for i := range b {
		b[i] = 0
	}

	s, _ := roots[0].Compound.Get("s")
	require.Equal(t, tag.String("value"), s)
	a, _ := roots[0].Compound.Get("a")
	require.Equal(t, tag.ByteArray{1, 2, 3}, a)
}

func TestInvalidUTF8Preserved(t *testing.T) {
	raw := string([]byte{0xff, 0xfe, 'x'})
	roots := []nbt.Root{{Name: raw, Compound: tag.NewCompound(tag.F(raw, tag.String(raw)))}}

	b, err := nbt.Encode(roots)
	require.NoError(t, err)

	got, err := nbt.Decode(b)
	require.NoError(t, err)
	testutil.RequireRootsEqual(t, roots, got)
}

func TestLongStrings(t *testing.T) {
	long := strings.Repeat("x", 1000)
	roots := []nbt.Root{{Compound: tag.NewCompound(tag.F("s", tag.String(long)))}}

	b, err := nbt.Encode(roots)
	require.NoError(t, err)
	require.Equal(t, []byte{0xe8, 0x03}, b[7:9])

	got, err := nbt.Decode(b)
	require.NoError(t, err)
	testutil.RequireRootsEqual(t, roots, got)
}
