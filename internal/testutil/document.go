package testutil

import (
	"encoding/json"
	"testing"

	"github.com/chaisql/nbt"
	"github.com/chaisql/nbt/tag"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// MakeCompound creates a compound from a typed json object.
func MakeCompound(t testing.TB, jsonDoc string) *tag.Compound {
	t.Helper()

	c, err := tag.ParseCompoundJSON([]byte(jsonDoc))
	require.NoError(t, err)
	return c
}

// MakeRoots creates roots from a json array of {"name", "value"} objects.
func MakeRoots(t testing.TB, jsonRoots string) []nbt.Root {
	t.Helper()

	roots, err := nbt.ParseRootsJSON([]byte(jsonRoots))
	require.NoError(t, err)
	return roots
}

// RequireTagEqual fails with a diff of the typed json of both tags if they differ.
func RequireTagEqual(t testing.TB, want, got tag.Tag) {
	t.Helper()

	if tag.Equal(want, got) {
		return
	}

	t.Fatal(cmp.Diff(toJSON(t, want), toJSON(t, got)))
}

// RequireRootsEqual fails with a diff of both forests if they differ.
func RequireRootsEqual(t testing.TB, want, got []nbt.Root) {
	t.Helper()

	require.Equal(t, len(want), len(got), "expected %d roots, got %d", len(want), len(got))

	for i := range want {
		require.Equal(t, want[i].Name, got[i].Name)
		RequireTagEqual(t, want[i].Compound, got[i].Compound)
	}
}

func toJSON(t testing.TB, v tag.Tag) any {
	t.Helper()

	if v == nil {
		return nil
	}

	data, err := tag.MarshalJSON(v)
	require.NoError(t, err)

	var x any
	require.NoError(t, json.Unmarshal(data, &x))
	return x
}
