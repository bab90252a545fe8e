package nbt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chaisql/nbt"
	"github.com/chaisql/nbt/internal/testutil"
	"github.com/chaisql/nbt/tag"
	"github.com/stretchr/testify/require"
)

func TestEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := nbt.NewEncoder(&buf)

	a := nbt.Root{Name: "a", Compound: tag.NewCompound(tag.F("x", tag.Int(1)))}
	b := nbt.Root{Name: "b", Compound: tag.NewCompound()}

	require.NoError(t, enc.Encode(a))
	require.NoError(t, enc.Encode(b))

	want, err := nbt.Encode([]nbt.Root{a, b})
	require.NoError(t, err)
	require.Equal(t, want, buf.Bytes())

	// nothing is written for an invalid tree
	bad := nbt.Root{Compound: tag.NewCompound(tag.F("x", nil))}
	err = enc.Encode(bad)
	testutil.ErrorIs(t, err, nbt.ErrEncoding)
	require.Equal(t, want, buf.Bytes())
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		root   nbt.Root
		offset int
	}{
		{"nil field", nbt.Root{Compound: tag.NewCompound(tag.F("x", nil))}, 3},
		{"end field", nbt.Root{Compound: tag.NewCompound(tag.F("x", tag.End{}))}, 3},
		{"name too long", nbt.Root{Name: strings.Repeat("n", 1<<16)}, 1},
		{"field name too long", nbt.Root{Compound: tag.NewCompound(tag.F(strings.Repeat("n", 1<<16), tag.Byte(1)))}, 4},
		{"string too long", nbt.Root{Compound: tag.NewCompound(tag.F("s", tag.String(strings.Repeat("n", 1<<16))))}, 7},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := nbt.Encode([]nbt.Root{test.root})
			require.Nil(t, b)
			testutil.ErrorAt(t, err, nbt.ErrEncoding, test.offset)
		})
	}
}

func TestAppendRoot(t *testing.T) {
	b, err := nbt.AppendRoot([]byte{0xaa}, nbt.Root{Name: "r"})
	require.NoError(t, err)
	require.Equal(t, []byte{0xaa, 0x0a, 0x01, 0x00, 'r', 0x00}, b)
}
