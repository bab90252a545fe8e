package world

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/chaisql/nbt"
	"github.com/chaisql/nbt/internal/kv"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize is the number of records decoded together by Scan.
const DefaultBatchSize = 64

// A Record is a decoded chunk record.
type Record struct {
	Key   Key
	Roots []nbt.Root
}

// ScanOptions configures Scan.
type ScanOptions struct {
	// Record types to visit. If empty, every type holding NBT is visited.
	Types []RecordType

	// Only roots satisfying every filter are kept. Records left with no
	// roots are skipped.
	Where []Where

	// Number of records decoded concurrently. Defaults to GOMAXPROCS.
	Workers int

	// Number of records read before decoding them. Defaults to DefaultBatchSize.
	BatchSize int

	// Log and skip records that fail to decode instead of stopping.
	SkipInvalid bool

	Decode *nbt.DecodeOptions
	Logger *slog.Logger
}

func (o *ScanOptions) wants(t RecordType) bool {
	if len(o.Types) == 0 {
		return t.HoldsNBT()
	}

	for _, tt := range o.Types {
		if tt == t {
			return true
		}
	}
	return false
}

type rawRecord struct {
	key   Key
	value []byte
}

type decoded struct {
	rec  Record
	skip bool
}

// Scan decodes the chunk records visible to tx and calls fn for each of them
// in key order. Records are decoded in parallel, fn is never called
// concurrently. If fn returns an error, the scan stops and returns it.
func Scan(ctx context.Context, tx *kv.Transaction, opts *ScanOptions, fn func(Record) error) error {
	if opts == nil {
		opts = &ScanOptions{}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	size := opts.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	it := tx.Iterator(nil)
	defer it.Close()

	batch := make([]rawRecord, 0, size)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		out := make([]decoded, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := range batch {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				r := batch[i]
				roots, err := nbt.DecodeWithOptions(r.value, opts.Decode)
				if err != nil {
					if opts.SkipInvalid {
						logger.Warn("skipping invalid record", "key", r.key.String(), "error", err.Error())
						out[i].skip = true
						return nil
					}
					return errors.Wrapf(err, "record %s", r.key)
				}

				out[i].rec = Record{Key: r.key, Roots: filterRoots(roots, opts.Where)}
				out[i].skip = len(opts.Where) > 0 && len(out[i].rec.Roots) == 0
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		batch = batch[:0]

		for _, d := range out {
			if d.skip {
				continue
			}
			if err := fn(d.rec); err != nil {
				return err
			}
		}
		return nil
	}

	for it.First(); it.Valid(); it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}

		k, ok := ParseKey(it.Key())
		if !ok || !opts.wants(k.Type) {
			continue
		}

		// the iterator reuses its buffers
		v := make([]byte, len(it.Value()))
		copy(v, it.Value())
		batch = append(batch, rawRecord{key: k, value: v})

		if len(batch) == size {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := it.Error(); err != nil {
		return err
	}

	return flush()
}

func filterRoots(roots []nbt.Root, wheres []Where) []nbt.Root {
	if len(wheres) == 0 {
		return roots
	}

	var kept []nbt.Root
	for _, r := range roots {
		if MatchAll(r.Compound, wheres) {
			kept = append(kept, r)
		}
	}
	return kept
}

// GetRecord decodes the record stored at key.
func GetRecord(tx *kv.Transaction, key Key, opts *nbt.DecodeOptions) ([]nbt.Root, error) {
	v, err := tx.Get(key.Encode())
	if err != nil {
		return nil, err
	}

	roots, err := nbt.DecodeWithOptions(v, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "record %s", key)
	}
	return roots, nil
}

// PutRecord encodes roots and stores them at key, replacing any previous record.
func PutRecord(tx *kv.Transaction, key Key, roots []nbt.Root) error {
	v, err := nbt.Encode(roots)
	if err != nil {
		return errors.Wrapf(err, "record %s", key)
	}

	return tx.Put(key.Encode(), v)
}

// DeleteRecord removes the record stored at key. If not found, returns kv.ErrKeyNotFound.
func DeleteRecord(tx *kv.Transaction, key Key) error {
	return tx.Delete(key.Encode())
}
