package world_test

import (
	"testing"

	"github.com/chaisql/nbt/internal/testutil"
	"github.com/chaisql/nbt/internal/world"
	"github.com/chaisql/nbt/tag"
	"github.com/stretchr/testify/require"
)

func npc(t *testing.T) *tag.Compound {
	return testutil.MakeCompound(t, `{
		"identifier": {"string": "minecraft:npc"},
		"definitions": {"list": {"kind": "string", "items": ["+minecraft:npc", "+trader"]}},
		"Health": {"short": 20},
		"Tags": {"compound": {"name": {"string": "Bob"}}}
	}`)
}

func TestParseWhere(t *testing.T) {
	w, err := world.ParseWhere("definitions=+minecraft:npc")
	require.NoError(t, err)
	require.Equal(t, world.Where{Path: []string{"definitions"}, Value: "+minecraft:npc"}, w)

	w, err = world.ParseWhere("a.b=c=d")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, w.Path)
	require.Equal(t, "c=d", w.Value)
	require.Equal(t, "a.b=c=d", w.String())

	for _, s := range []string{"nothing", "=v", "a..b=v"} {
		_, err = world.ParseWhere(s)
		require.Error(t, err, s)
	}
}

func TestWhereMatch(t *testing.T) {
	tests := []struct {
		where string
		match bool
	}{
		{"identifier=minecraft:npc", true},
		{"identifier=minecraft:cow", false},
		{"definitions=+trader", true},
		{"definitions=+minecraft:cow", false},
		{"Health=20", true},
		{"Health=21", false},
		{"Tags.name=Bob", true},
		{"Tags.name.first=Bob", false},
		{"Missing=x", false},
		{"Tags=x", false},
	}

	c := npc(t)
	for _, test := range tests {
		t.Run(test.where, func(t *testing.T) {
			w, err := world.ParseWhere(test.where)
			require.NoError(t, err)
			require.Equal(t, test.match, w.Match(c))
		})
	}
}

func TestMatchAll(t *testing.T) {
	a, err := world.ParseWhere("identifier=minecraft:npc")
	require.NoError(t, err)
	b, err := world.ParseWhere("Health=1")
	require.NoError(t, err)

	require.True(t, world.MatchAll(npc(t), nil))
	require.True(t, world.MatchAll(npc(t), []world.Where{a}))
	require.False(t, world.MatchAll(npc(t), []world.Where{a, b}))
}
