package world_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/chaisql/nbt"
	"github.com/chaisql/nbt/internal/kv"
	"github.com/chaisql/nbt/internal/testutil"
	"github.com/chaisql/nbt/internal/world"
	"github.com/chaisql/nbt/tag"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func entity(id string) nbt.Root {
	return nbt.Root{Compound: tag.NewCompound(tag.F("identifier", tag.String(id)))}
}

func setup(t *testing.T) *kv.Engine {
	t.Helper()

	ng := testutil.NewEngine(t)

	testutil.Update(t, ng, func(tx *kv.Transaction) {
		for x := int32(0); x < 100; x++ {
			roots := []nbt.Root{entity("minecraft:cow")}
			if x%10 == 0 {
				roots = append(roots, entity("minecraft:npc"))
			}
			require.NoError(t, world.PutRecord(tx, world.Key{X: x, Type: world.Entity}, roots))
		}
		require.NoError(t, world.PutRecord(tx, world.Key{X: 1, Type: world.BlockEntity}, []nbt.Root{entity("minecraft:chest")}))
		require.NoError(t, tx.Put(world.Key{X: 2, Type: world.Version}.Encode(), []byte{40}))
		require.NoError(t, tx.Put([]byte("~local_player"), []byte{0xff}))
	})

	return ng
}

func scan(t *testing.T, ng *kv.Engine, opts *world.ScanOptions) ([]world.Record, error) {
	t.Helper()

	tx, err := ng.Begin(kv.TxOptions{})
	require.NoError(t, err)
	defer tx.Rollback()

	var recs []world.Record
	err = world.Scan(context.Background(), tx, opts, func(r world.Record) error {
		recs = append(recs, r)
		return nil
	})
	return recs, err
}

func TestScan(t *testing.T) {
	ng := setup(t)

	t.Run("Default types", func(t *testing.T) {
		recs, err := scan(t, ng, &world.ScanOptions{BatchSize: 7, Workers: 3})
		require.NoError(t, err)
		require.Len(t, recs, 101)

		var prev []byte
		for _, r := range recs {
			k := r.Key.Encode()
			if prev != nil {
				require.Less(t, string(prev), string(k))
			}
			prev = k
		}
	})

	t.Run("Types", func(t *testing.T) {
		recs, err := scan(t, ng, &world.ScanOptions{Types: []world.RecordType{world.BlockEntity}})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		require.Equal(t, world.Key{X: 1, Type: world.BlockEntity}, recs[0].Key)
	})

	t.Run("Where", func(t *testing.T) {
		w, err := world.ParseWhere("identifier=minecraft:npc")
		require.NoError(t, err)

		recs, err := scan(t, ng, &world.ScanOptions{Where: []world.Where{w}})
		require.NoError(t, err)
		require.Len(t, recs, 10)
		for _, r := range recs {
			require.Zero(t, r.Key.X%10)
			require.Len(t, r.Roots, 1)
		}
	})

	t.Run("Callback error", func(t *testing.T) {
		tx, err := ng.Begin(kv.TxOptions{})
		require.NoError(t, err)
		defer tx.Rollback()

		stop := errors.New("stop")
		var n int
		err = world.Scan(context.Background(), tx, nil, func(r world.Record) error {
			n++
			if n == 3 {
				return stop
			}
			return nil
		})
		require.ErrorIs(t, err, stop)
		require.Equal(t, 3, n)
	})

	t.Run("Canceled context", func(t *testing.T) {
		tx, err := ng.Begin(kv.TxOptions{})
		require.NoError(t, err)
		defer tx.Rollback()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = world.Scan(ctx, tx, nil, func(r world.Record) error { return nil })
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestScanInvalidRecords(t *testing.T) {
	ng := setup(t)

	testutil.Update(t, ng, func(tx *kv.Transaction) {
		require.NoError(t, tx.Put(world.Key{X: 5, Z: 5, Type: world.Entity}.Encode(), []byte{0x0a, 0x00}))
	})

	_, err := scan(t, ng, nil)
	require.ErrorIs(t, err, nbt.ErrTruncated)
	require.ErrorContains(t, err, "entity(5, 5)")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	recs, err := scan(t, ng, &world.ScanOptions{SkipInvalid: true, Logger: logger})
	require.NoError(t, err)
	require.Len(t, recs, 101)

	require.Equal(t, 1, strings.Count(logs.String(), "\n"), logs.String())
	require.Contains(t, logs.String(), "skipping invalid record")
	require.Contains(t, logs.String(), "entity(5, 5)")
	require.Contains(t, logs.String(), "unexpected end of buffer")
	require.NotContains(t, logs.String(), "stack trace")
}

func TestGetRecord(t *testing.T) {
	ng := setup(t)

	tx, err := ng.Begin(kv.TxOptions{})
	require.NoError(t, err)
	defer tx.Rollback()

	roots, err := world.GetRecord(tx, world.Key{X: 10, Type: world.Entity}, nil)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	testutil.RequireTagEqual(t, entity("minecraft:npc").Compound, roots[1].Compound)

	_, err = world.GetRecord(tx, world.Key{X: 1000, Type: world.Entity}, nil)
	require.ErrorIs(t, err, kv.ErrKeyNotFound)
}
