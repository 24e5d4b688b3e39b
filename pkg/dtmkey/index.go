package dtmkey

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/agenthands/dtmkey/pkg/batch"
	"github.com/agenthands/dtmkey/pkg/catalog"
	"github.com/agenthands/dtmkey/pkg/core"
	"github.com/agenthands/dtmkey/pkg/elemkey"
	"github.com/agenthands/dtmkey/pkg/entry"
	"github.com/agenthands/dtmkey/pkg/sysid"
	"github.com/agenthands/dtmkey/pkg/websafe"
	"github.com/agenthands/dtmkey/pkg/xref"
	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"
)

var errFound = errors.New("found")

type index struct {
	catalog catalog.Catalog
	entries entry.Codec

	mu     sync.RWMutex
	closed bool
}

// OpenIndex opens the cross-reference index in cfg.Index.Dir.
func OpenIndex(ctx context.Context, cfg Config) (Index, error) {
	if cfg.Index.Dir == "" {
		return nil, fmt.Errorf("%w: index directory is required", core.ErrInvalidInput)
	}

	cat, err := catalog.Open(cfg.Index)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	return &index{
		catalog: cat,
		entries: entry.NewCodec(cfg.Limits),
	}, nil
}

func (ix *index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.closed {
		return nil
	}
	ix.closed = true
	return ix.catalog.Close()
}

func (ix *index) Add(ctx context.Context, xrefText string, meta AddMeta) (Entry, error) {
	x, err := xref.ParseKey(xrefText)
	if err != nil {
		return Entry{}, err
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.closed {
		return Entry{}, core.ErrClosed
	}

	wb := ix.catalog.NewBatch()
	defer wb.Close()

	e, err := ix.put(wb, x, meta)
	if err != nil {
		return Entry{}, err
	}
	if err := ix.catalog.Commit(wb); err != nil {
		return Entry{}, err
	}

	core.Logger().Debug("indexed xref",
		zap.String("model", e.ModelURN),
		zap.String("element", e.ElementKey))
	return e, nil
}

// AddBatch indexes every complete record of an xref array blob in one atomic write.
func (ix *index) AddBatch(ctx context.Context, blobText string, meta AddMeta) (int, error) {
	models, elements, err := batch.FromXrefKeyArray(blobText)
	if err != nil {
		return 0, err
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.closed {
		return 0, core.ErrClosed
	}

	wb := ix.catalog.NewBatch()
	defer wb.Close()

	for i := range models {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		text, err := xref.Make(core.ModelURNPrefix+models[i], elements[i])
		if err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
		x, err := xref.ParseKey(text)
		if err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := ix.put(wb, x, meta); err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
	}

	if err := ix.catalog.Commit(wb); err != nil {
		return 0, err
	}

	core.Logger().Debug("indexed xref batch", zap.Int("records", len(models)))
	return len(models), nil
}

func (ix *index) put(wb *pebble.Batch, x core.XrefKey, meta AddMeta) (Entry, error) {
	element := x.Element()
	model := x.Model()
	sid := sysid.Encode(element.Low32())

	e := &entry.EntryV1{
		Version:  1,
		Logical:  element.IsLogical(),
		SystemID: sid,
		Label:    meta.Label,
		Tags:     meta.Tags,
	}
	val, err := ix.entries.Encode(e)
	if err != nil {
		return Entry{}, err
	}

	if err := ix.catalog.PutXref(wb, x, val); err != nil {
		return Entry{}, err
	}
	if err := ix.catalog.PutSystemID(wb, model, sid, element); err != nil {
		return Entry{}, err
	}

	return toEntry(x, e), nil
}

func (ix *index) Lookup(ctx context.Context, xrefText string) (Entry, error) {
	x, err := xref.ParseKey(xrefText)
	if err != nil {
		return Entry{}, err
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if ix.closed {
		return Entry{}, core.ErrClosed
	}

	e, ok, err := ix.get(ctx, x)
	if err != nil {
		return Entry{}, err
	}
	if !ok {
		return Entry{}, core.ErrNotFound
	}
	return toEntry(x, e), nil
}

func (ix *index) get(ctx context.Context, x core.XrefKey) (*entry.EntryV1, bool, error) {
	val, ok, err := ix.catalog.GetXref(ctx, x)
	if err != nil || !ok {
		return nil, ok, err
	}
	e, err := ix.entries.Decode(val)
	if err != nil {
		return nil, false, err
	}
	return e, true, nil
}

func (ix *index) Remove(ctx context.Context, xrefText string) error {
	x, err := xref.ParseKey(xrefText)
	if err != nil {
		return err
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.closed {
		return core.ErrClosed
	}

	e, ok, err := ix.get(ctx, x)
	if err != nil {
		return err
	}
	if !ok {
		return core.ErrNotFound
	}

	wb := ix.catalog.NewBatch()
	defer wb.Close()

	if err := ix.catalog.DeleteXref(wb, x); err != nil {
		return err
	}

	// Another element of the model may share the system id. If the mapping
	// points at the removed element, hand it to a survivor before dropping it.
	model := x.Model()
	owner, found, err := ix.catalog.GetElementForSystemID(ctx, model, e.SystemID)
	if err != nil {
		return err
	}
	if found && owner == x.Element() {
		next, ok, err := ix.sharingSystemID(ctx, x, e.SystemID)
		if err != nil {
			return err
		}
		if ok {
			err = ix.catalog.PutSystemID(wb, model, e.SystemID, next)
		} else {
			err = ix.catalog.DeleteSystemID(wb, model, e.SystemID)
		}
		if err != nil {
			return err
		}
	}

	return ix.catalog.Commit(wb)
}

// sharingSystemID finds another indexed element of x's model whose system id is sid.
func (ix *index) sharingSystemID(ctx context.Context, x core.XrefKey, sid []byte) (core.FullKey, bool, error) {
	var found core.FullKey
	err := ix.catalog.IterateModel(ctx, x.Model(), func(other core.XrefKey, val []byte) error {
		if other == x {
			return nil
		}
		e, err := ix.entries.Decode(val)
		if err != nil {
			return err
		}
		if bytes.Equal(e.SystemID, sid) {
			found = other.Element()
			return errFound
		}
		return nil
	})
	if errors.Is(err, errFound) {
		return found, true, nil
	}
	return found, false, err
}

func (ix *index) Elements(ctx context.Context, modelURN string) ([]Entry, error) {
	model, err := xref.ParseModelURN(modelURN)
	if err != nil {
		return nil, err
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if ix.closed {
		return nil, core.ErrClosed
	}

	var out []Entry
	err = ix.catalog.IterateModel(ctx, model, func(x core.XrefKey, val []byte) error {
		e, err := ix.entries.Decode(val)
		if err != nil {
			return err
		}
		out = append(out, toEntry(x, e))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (ix *index) ResolveSystemID(ctx context.Context, modelURN, systemID string) (string, error) {
	model, err := xref.ParseModelURN(modelURN)
	if err != nil {
		return "", err
	}
	if _, err := sysid.Parse(systemID); err != nil {
		return "", err
	}
	sid, err := websafe.Decode(systemID)
	if err != nil {
		return "", err
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if ix.closed {
		return "", core.ErrClosed
	}

	element, ok, err := ix.catalog.GetElementForSystemID(ctx, model, sid)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", core.ErrNotFound
	}
	return elemkey.EncodeFullKey(element), nil
}

func toEntry(x core.XrefKey, e *entry.EntryV1) Entry {
	rendered := xref.FromKey(x)
	return Entry{
		Xref:       xref.EncodeKey(x),
		ModelURN:   rendered.ModelURN,
		ElementKey: rendered.ElementKey,
		SystemID:   websafe.Encode(e.SystemID),
		Logical:    e.Logical,
		Label:      e.Label,
		Tags:       e.Tags,
	}
}
