package testutil

import (
	"path/filepath"
	"testing"

	"github.com/chaisql/nbt/internal/kv"
	"github.com/stretchr/testify/require"
)

// NewEngine returns an in-memory engine closed at the end of the test.
func NewEngine(t testing.TB) *kv.Engine {
	t.Helper()

	ng, err := kv.NewEngine(kv.MemoryPath, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = ng.Close()
	})
	return ng
}

// TempDBPath returns the path of a database directory that does not exist yet,
// inside a directory removed at the end of the test.
func TempDBPath(t testing.TB) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "db")
}

// Update runs fn in a writable transaction and commits it.
func Update(t testing.TB, ng *kv.Engine, fn func(tx *kv.Transaction)) {
	t.Helper()

	tx, err := ng.Begin(kv.TxOptions{Writable: true})
	require.NoError(t, err)
	defer tx.Rollback()

	fn(tx)

	require.NoError(t, tx.Commit())
}
