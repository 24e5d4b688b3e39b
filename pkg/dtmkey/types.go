package dtmkey

import (
	"context"

	"github.com/agenthands/dtmkey/pkg/core"
	"github.com/agenthands/dtmkey/pkg/xref"
)

type ShortKey = core.ShortKey
type FullKey = core.FullKey
type ModelKey = core.ModelKey
type XrefKey = core.XrefKey
type Flags = core.Flags
type Xref = xref.Xref

// AddMeta carries the optional metadata stored with an indexed xref.
type AddMeta struct {
	Label string
	Tags  map[string]string // optional, bounded by LimitsConfig
}

// Entry is an indexed cross-model reference in text form.
type Entry struct {
	Xref       string // web-safe xref key
	ModelURN   string
	ElementKey string // web-safe full key
	SystemID   string
	Logical    bool
	Label      string
	Tags       map[string]string
}

// Index persists cross-model references and answers per-model queries.
type Index interface {
	Add(ctx context.Context, xrefText string, meta AddMeta) (Entry, error)
	AddBatch(ctx context.Context, blobText string, meta AddMeta) (int, error)
	Lookup(ctx context.Context, xrefText string) (Entry, error)
	Remove(ctx context.Context, xrefText string) error

	// Elements lists every indexed reference into the model named by modelURN.
	Elements(ctx context.Context, modelURN string) ([]Entry, error)

	// ResolveSystemID returns the full element key that produced systemID
	// among the references into modelURN.
	ResolveSystemID(ctx context.Context, modelURN, systemID string) (string, error)

	Close() error
}
