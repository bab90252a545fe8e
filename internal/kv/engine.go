// Package kv stores raw records in a Pebble database.
// It knows nothing about the content of the records.
package kv

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// MemoryPath can be passed to NewEngine to open a database that only lives in memory.
const MemoryPath = ":memory:"

// Engine represents a Pebble kv.
type Engine struct {
	DB   *pebble.DB
	opts *pebble.Options
}

// NewEngine creates a Pebble kv engine. It takes the same argument as Pebble's Open function,
// except that a path of MemoryPath opens an in-memory database.
// opts may be nil and is not modified.
func NewEngine(path string, opts *pebble.Options) (*Engine, error) {
	if opts == nil {
		opts = &pebble.Options{}
	} else {
		opts = opts.Clone()
	}

	if path == MemoryPath {
		opts.FS = vfs.NewMem()
		path = ""
	}

	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %q", path)
	}

	return &Engine{
		DB:   db,
		opts: opts,
	}, nil
}

// Options returns Pebble options logging to l.
func Options(l *slog.Logger) *pebble.Options {
	lg := NewLogger(l)

	return &pebble.Options{
		Logger:          lg,
		LoggerAndTracer: lg,
	}
}

// TxOptions is used to configure a transaction upon creation.
type TxOptions struct {
	Writable bool
}

// Begin creates a transaction.
// Writable transactions use Pebble's indexed batches and see their own writes.
// Read-only transactions read from a snapshot.
func (e *Engine) Begin(opts TxOptions) (*Transaction, error) {
	tx := Transaction{
		ng:       e,
		writable: opts.Writable,
	}

	if opts.Writable {
		tx.batch = e.DB.NewIndexedBatch()
	} else {
		tx.snapshot = e.DB.NewSnapshot()
	}

	return &tx, nil
}

// Close the engine and underlying Pebble database.
func (e *Engine) Close() error {
	return e.DB.Close()
}
