package entry

import (
	"fmt"

	"github.com/agenthands/dtmkey/pkg/core"
	"github.com/fxamacker/cbor/v2"
)

// EntryV1 is the stored value of one cross-model reference in the index.
type EntryV1 struct {
	Version  uint16            `cbor:"version"`
	Logical  bool              `cbor:"logical"`
	SystemID []byte            `cbor:"system_id"`
	Label    string            `cbor:"label,omitempty"`
	Tags     map[string]string `cbor:"tags,omitempty"`
}

// Codec defines the interface for entry encoding/decoding and validation.
type Codec interface {
	Encode(e *EntryV1) ([]byte, error)
	Decode(b []byte) (*EntryV1, error)
}

type codec struct {
	limits  core.LimitsConfig
	encMode cbor.EncMode
}

// NewCodec returns a new Codec implementation.
func NewCodec(limits core.LimitsConfig) Codec {
	// Use canonical CBOR encoding (Core Deterministic Encoding Requirements)
	em, _ := cbor.CanonicalEncOptions().EncMode()
	return &codec{
		limits:  limits,
		encMode: em,
	}
}

func (c *codec) Encode(e *EntryV1) ([]byte, error) {
	if err := c.validate(e); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidInput, err)
	}

	return c.encMode.Marshal(e)
}

func (c *codec) Decode(b []byte) (*EntryV1, error) {
	var e EntryV1
	if err := cbor.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal entry: %v", core.ErrCorrupt, err)
	}

	if err := c.validate(&e); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrCorrupt, err)
	}

	return &e, nil
}

func (c *codec) validate(e *EntryV1) error {
	if e.Version != 1 {
		return fmt.Errorf("unsupported entry version %d", e.Version)
	}

	if len(e.SystemID) == 0 || len(e.SystemID) > core.MaxSystemIDSize {
		return fmt.Errorf("system id has %d bytes, want 1..%d", len(e.SystemID), core.MaxSystemIDSize)
	}

	if len(e.Label) > c.limits.MaxLabelLen && c.limits.MaxLabelLen > 0 {
		return fmt.Errorf("label too long: %d > %d", len(e.Label), c.limits.MaxLabelLen)
	}

	if len(e.Tags) > c.limits.MaxTags && c.limits.MaxTags > 0 {
		return fmt.Errorf("too many tags: %d > %d", len(e.Tags), c.limits.MaxTags)
	}

	for k, v := range e.Tags {
		if len(k) > c.limits.MaxTagKeyLen && c.limits.MaxTagKeyLen > 0 {
			return fmt.Errorf("tag key too long: %d > %d", len(k), c.limits.MaxTagKeyLen)
		}
		if len(v) > c.limits.MaxTagValLen && c.limits.MaxTagValLen > 0 {
			return fmt.Errorf("tag value too long: %d > %d", len(v), c.limits.MaxTagValLen)
		}
	}

	return nil
}
