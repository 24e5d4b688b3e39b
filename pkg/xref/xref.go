// Package xref builds and parses cross-model references: a 16-byte model key
// followed by the 24-byte full key of an element inside that model.
package xref

import (
	"fmt"
	"strings"

	"github.com/agenthands/dtmkey/pkg/core"
	"github.com/agenthands/dtmkey/pkg/elemkey"
	"github.com/agenthands/dtmkey/pkg/websafe"
	"go.uber.org/zap"
)

// Xref is the textual form of a decoded cross-model reference.
type Xref struct {
	ModelURN   string
	ElementKey string
}

// ModelURN wraps a model key as urn:adsk.dtm:<web-safe key>.
func ModelURN(m core.ModelKey) string {
	return core.ModelURNPrefix + websafe.Encode(m[:])
}

// ParseModelURN validates the URN prefix and decodes the 16-byte model key.
func ParseModelURN(urn string) (core.ModelKey, error) {
	var m core.ModelKey
	encoded, ok := strings.CutPrefix(urn, core.ModelURNPrefix)
	if !ok {
		return m, fmt.Errorf("%w: %q lacks prefix %q", core.ErrInvalidURN, urn, core.ModelURNPrefix)
	}
	b, err := websafe.DecodeSize(encoded, core.ModelKeySize)
	if err != nil {
		return m, fmt.Errorf("model key of %q: %w", urn, err)
	}
	copy(m[:], b)
	return m, nil
}

// ParseKey decodes web-safe text holding exactly one 40-byte xref record.
func ParseKey(xrefText string) (core.XrefKey, error) {
	var x core.XrefKey
	b, err := websafe.Decode(xrefText)
	if err != nil {
		return x, err
	}
	if len(b) != core.XrefKeySize {
		return x, fmt.Errorf("%w: xref has %d bytes, want %d", core.ErrInvalidKeyLength, len(b), core.XrefKeySize)
	}
	copy(x[:], b)
	return x, nil
}

// FromKey renders a binary xref as its model URN and encoded element key.
func FromKey(x core.XrefKey) Xref {
	return Xref{
		ModelURN:   ModelURN(x.Model()),
		ElementKey: elemkey.EncodeFullKey(x.Element()),
	}
}

// EncodeKey returns the web-safe text of a binary xref.
func EncodeKey(x core.XrefKey) string {
	return websafe.Encode(x[:])
}

// Parse is Decode with an explicit error. The first 40 decoded bytes form
// the record; anything after them is ignored.
func Parse(xrefText string) (Xref, error) {
	b, err := websafe.Decode(xrefText)
	if err != nil {
		return Xref{}, err
	}
	if len(b) < core.XrefKeySize {
		return Xref{}, fmt.Errorf("%w: xref has %d bytes, want at least %d", core.ErrInvalidKeyLength, len(b), core.XrefKeySize)
	}
	var x core.XrefKey
	copy(x[:], b[:core.XrefKeySize])
	return FromKey(x), nil
}

// Decode splits an encoded xref into its model URN and element key.
// Malformed input is logged and reported as false.
func Decode(xrefText string) (Xref, bool) {
	x, err := Parse(xrefText)
	if err != nil {
		core.Logger().Warn("invalid xref key",
			zap.String("xref", xrefText),
			zap.Error(err))
		return Xref{}, false
	}
	return x, true
}

// Make builds the encoded xref for an element key inside the model named by
// modelURN. It is the inverse of Decode.
func Make(modelURN, elementKeyText string) (string, error) {
	m, err := ParseModelURN(modelURN)
	if err != nil {
		return "", err
	}
	k, err := elemkey.ParseFullKey(elementKeyText)
	if err != nil {
		return "", fmt.Errorf("element key: %w", err)
	}
	return EncodeKey(core.NewXrefKey(m, k)), nil
}
