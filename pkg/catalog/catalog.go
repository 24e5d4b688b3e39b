package catalog

import (
	"context"
	"fmt"

	"github.com/agenthands/dtmkey/pkg/core"
	"github.com/cockroachdb/pebble"
)

var (
	PrefixXref     = []byte("xr:")
	PrefixSystemID = []byte("sid:")
)

// Catalog defines the interface for the embedded cross-reference index.
//
// Xref keys are laid out as PrefixXref ‖ ModelKey ‖ FullKey, so every
// reference into one model is a contiguous range.
type Catalog interface {
	GetXref(ctx context.Context, x core.XrefKey) ([]byte, bool, error)
	PutXref(batch *pebble.Batch, x core.XrefKey, val []byte) error
	DeleteXref(batch *pebble.Batch, x core.XrefKey) error
	IterateModel(ctx context.Context, m core.ModelKey, fn func(x core.XrefKey, val []byte) error) error

	GetElementForSystemID(ctx context.Context, m core.ModelKey, sid []byte) (core.FullKey, bool, error)
	PutSystemID(batch *pebble.Batch, m core.ModelKey, sid []byte, element core.FullKey) error
	DeleteSystemID(batch *pebble.Batch, m core.ModelKey, sid []byte) error

	NewBatch() *pebble.Batch
	// Commit applies batch with the write options chosen at Open.
	Commit(batch *pebble.Batch) error
	Close() error
}

type pebbleCatalog struct {
	db        *pebble.DB
	writeOpts *pebble.WriteOptions
}

// Open opens a Pebble-based catalog in the configured directory.
func Open(cfg core.IndexConfig) (Catalog, error) {
	db, err := pebble.Open(cfg.Dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble db: %w", err)
	}
	wo := pebble.NoSync
	if cfg.Sync {
		wo = pebble.Sync
	}
	return &pebbleCatalog{db: db, writeOpts: wo}, nil
}

func (c *pebbleCatalog) Close() error {
	return c.db.Close()
}

func (c *pebbleCatalog) NewBatch() *pebble.Batch {
	return c.db.NewBatch()
}

func (c *pebbleCatalog) Commit(batch *pebble.Batch) error {
	return batch.Commit(c.writeOpts)
}

func (c *pebbleCatalog) GetXref(ctx context.Context, x core.XrefKey) ([]byte, bool, error) {
	val, closer, err := c.db.Get(keyWithPrefix(PrefixXref, x[:]))
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer closer.Close()

	res := make([]byte, len(val))
	copy(res, val)
	return res, true, nil
}

func (c *pebbleCatalog) PutXref(batch *pebble.Batch, x core.XrefKey, val []byte) error {
	return c.set(batch, keyWithPrefix(PrefixXref, x[:]), val)
}

func (c *pebbleCatalog) DeleteXref(batch *pebble.Batch, x core.XrefKey) error {
	return c.delete(batch, keyWithPrefix(PrefixXref, x[:]))
}

func (c *pebbleCatalog) IterateModel(ctx context.Context, m core.ModelKey, fn func(x core.XrefKey, val []byte) error) error {
	lower := keyWithPrefix(PrefixXref, m[:])
	iter, err := c.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: incrementByte(lower),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw := iter.Key()[len(PrefixXref):]
		if len(raw) != core.XrefKeySize {
			return fmt.Errorf("%w: xref index key has %d bytes", core.ErrCorrupt, len(raw))
		}
		var x core.XrefKey
		copy(x[:], raw)

		val := make([]byte, len(iter.Value()))
		copy(val, iter.Value())

		if err := fn(x, val); err != nil {
			return err
		}
	}
	return iter.Error()
}

func (c *pebbleCatalog) GetElementForSystemID(ctx context.Context, m core.ModelKey, sid []byte) (core.FullKey, bool, error) {
	var k core.FullKey
	val, closer, err := c.db.Get(keyWithPrefix(PrefixSystemID, m[:], sid))
	if err != nil {
		if err == pebble.ErrNotFound {
			return k, false, nil
		}
		return k, false, err
	}
	defer closer.Close()

	if len(val) != core.FullKeySize {
		return k, false, fmt.Errorf("%w: invalid element key length %d", core.ErrCorrupt, len(val))
	}
	copy(k[:], val)
	return k, true, nil
}

func (c *pebbleCatalog) PutSystemID(batch *pebble.Batch, m core.ModelKey, sid []byte, element core.FullKey) error {
	return c.set(batch, keyWithPrefix(PrefixSystemID, m[:], sid), element[:])
}

func (c *pebbleCatalog) DeleteSystemID(batch *pebble.Batch, m core.ModelKey, sid []byte) error {
	return c.delete(batch, keyWithPrefix(PrefixSystemID, m[:], sid))
}

func (c *pebbleCatalog) set(batch *pebble.Batch, key, val []byte) error {
	if batch != nil {
		return batch.Set(key, val, nil)
	}
	return c.db.Set(key, val, c.writeOpts)
}

func (c *pebbleCatalog) delete(batch *pebble.Batch, key []byte) error {
	if batch != nil {
		return batch.Delete(key, nil)
	}
	return c.db.Delete(key, c.writeOpts)
}

// keyWithPrefix builds a freshly allocated key; the package-level prefixes
// must never be appended to in place.
func keyWithPrefix(prefix []byte, parts ...[]byte) []byte {
	n := len(prefix)
	for _, p := range parts {
		n += len(p)
	}
	key := make([]byte, 0, n)
	key = append(key, prefix...)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

func incrementByte(b []byte) []byte {
	res := make([]byte, len(b))
	copy(res, b)
	for i := len(res) - 1; i >= 0; i-- {
		res[i]++
		if res[i] != 0 {
			return res
		}
	}
	return nil
}
