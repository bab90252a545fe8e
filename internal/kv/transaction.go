package kv

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

// A Transaction reads and writes records.
type Transaction struct {
	ng        *Engine
	batch     *pebble.Batch
	snapshot  *pebble.Snapshot
	writable  bool
	discarded bool
}

// Rollback the transaction. Can be used safely after commit.
func (t *Transaction) Rollback() error {
	if t.discarded {
		return errors.WithStack(ErrTransactionDiscarded)
	}

	t.discarded = true

	if t.writable {
		return t.batch.Close()
	}

	return t.snapshot.Close()
}

// Commit the transaction.
func (t *Transaction) Commit() error {
	if t.discarded {
		return errors.WithStack(ErrTransactionDiscarded)
	}

	if !t.writable {
		return errors.WithStack(ErrTransactionReadOnly)
	}

	t.discarded = true

	defer t.batch.Close()

	return t.batch.Commit(pebble.Sync)
}

func (t *Transaction) reader() pebble.Reader {
	if t.writable {
		return t.batch
	}

	return t.snapshot
}

// Put stores a key value pair. If it already exists, it overrides it.
func (t *Transaction) Put(k, v []byte) error {
	if !t.writable {
		return errors.WithStack(ErrTransactionReadOnly)
	}

	if len(k) == 0 {
		return errors.New("cannot store empty key")
	}

	return t.batch.Set(k, v, nil)
}

// Get returns a copy of the value associated with the given key. If not found, returns ErrKeyNotFound.
func (t *Transaction) Get(k []byte) ([]byte, error) {
	value, closer, err := t.reader().Get(k)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.WithStack(ErrKeyNotFound)
		}

		return nil, err
	}

	cp := make([]byte, len(value))
	copy(cp, value)

	err = closer.Close()
	if err != nil {
		return nil, err
	}

	return cp, nil
}

// Exists returns whether a key exists and is visible by the transaction.
func (t *Transaction) Exists(k []byte) (bool, error) {
	_, closer, err := t.reader().Get(k)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, closer.Close()
}

// Delete a record by key. If not found, returns ErrKeyNotFound.
func (t *Transaction) Delete(k []byte) error {
	if !t.writable {
		return errors.WithStack(ErrTransactionReadOnly)
	}

	ok, err := t.Exists(k)
	if err != nil {
		return err
	}
	if !ok {
		return errors.WithStack(ErrKeyNotFound)
	}

	return t.batch.Delete(k, nil)
}

// Iterator returns an iterator over the records of the transaction.
// If opts is nil, every record is visited.
func (t *Transaction) Iterator(opts *pebble.IterOptions) *Iterator {
	return &Iterator{
		Iterator: t.reader().NewIter(opts),
	}
}

// PrefixIterator returns an iterator over the keys starting with prefix.
func (t *Transaction) PrefixIterator(prefix []byte) *Iterator {
	if len(prefix) == 0 {
		return t.Iterator(nil)
	}

	return t.Iterator(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
}

// upperBound returns the smallest key greater than every key starting with prefix,
// or nil if there is none.
func upperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}

	return nil
}

// An Iterator walks records in key order.
// Keys and values are only valid until the next call to Next.
type Iterator struct {
	*pebble.Iterator
}
