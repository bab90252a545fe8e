package dbutil

import (
	"log/slog"
	"os"

	"github.com/chaisql/nbt/internal/kv"
	"github.com/cockroachdb/errors"
)

// OpenDB is a helper function that takes raw unvalidated parameters and opens a database.
// Unless create is true, the database must already exist.
func OpenDB(dbPath string, create bool, logger *slog.Logger) (*kv.Engine, error) {
	if dbPath == "" {
		return nil, errors.New("missing database path, use --db or NBT_DB")
	}

	if !create && dbPath != kv.MemoryPath {
		if _, err := os.Stat(dbPath); err != nil {
			return nil, errors.Wrapf(err, "cannot open database")
		}
	}

	opts := kv.Options(logger)
	opts.ErrorIfNotExists = !create && dbPath != kv.MemoryPath

	return kv.NewEngine(dbPath, opts)
}
