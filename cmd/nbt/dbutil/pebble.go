package dbutil

import (
	"context"
	"fmt"
	"io"

	"github.com/chaisql/nbt/internal/kv"
	"github.com/chaisql/nbt/internal/world"
)

type DumpPebbleOptions struct {
	KeysOnly bool
	// Prefix restricts the dump to keys starting with it.
	Prefix []byte
}

// DumpPebble writes every key and value of the store to w, one per line.
// Chunk record keys are followed by their decoded form. A blank line separates
// records of different chunks.
func DumpPebble(ctx context.Context, ng *kv.Engine, w io.Writer, opt DumpPebbleOptions) error {
	tx, err := ng.Begin(kv.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	iter := tx.PrefixIterator(opt.Prefix)
	defer func(iter *kv.Iterator) {
		_ = iter.Close()
	}(iter)

	var prev world.Key
	var started bool
	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}

		k := iter.Key()
		var desc string
		if key, ok := world.ParseKey(k); ok {
			if started && (key.X != prev.X || key.Z != prev.Z || key.Dimension != prev.Dimension) {
				fmt.Fprintln(w)
			}
			prev, started = key, true
			desc = " (" + key.String() + ")"
		}

		if opt.KeysOnly {
			_, err = fmt.Fprintf(w, "%v%s\n", k, desc)
		} else {
			_, err = fmt.Fprintf(w, "%v%s: %v\n", k, desc, iter.Value())
		}
		if err != nil {
			return err
		}
	}

	return iter.Error()
}
