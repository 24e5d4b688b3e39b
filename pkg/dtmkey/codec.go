// Package dtmkey is the public surface of the key codec: web-safe text,
// element key packing, cross-model references, batch blobs and system ids,
// plus a persistent index of cross-model references.
package dtmkey

import (
	"github.com/agenthands/dtmkey/pkg/batch"
	"github.com/agenthands/dtmkey/pkg/core"
	"github.com/agenthands/dtmkey/pkg/elemkey"
	"github.com/agenthands/dtmkey/pkg/sysid"
	"github.com/agenthands/dtmkey/pkg/websafe"
	"github.com/agenthands/dtmkey/pkg/xref"
	"go.uber.org/zap"
)

func EncodeWebSafe(b []byte) string {
	return websafe.Encode(b)
}

func DecodeWebSafe(text string) ([]byte, error) {
	return websafe.Decode(text)
}

func ToShortKey(fullKeyText string) (string, error) {
	return elemkey.ToShortKey(fullKeyText)
}

func ToFullKey(shortKeyText string, isLogical bool) (string, error) {
	return elemkey.ToFullKey(shortKeyText, isLogical)
}

// DecodeXref reports false, after logging, for text that decodes to fewer than 40 bytes.
func DecodeXref(xrefText string) (Xref, bool) {
	return xref.Decode(xrefText)
}

func MakeXrefKey(modelURN, elementKeyText string) (string, error) {
	return xref.Make(modelURN, elementKeyText)
}

func FromShortKeyArray(blobText string, useFullKeys, isLogical bool) ([]string, error) {
	return batch.FromShortKeyArray(blobText, useFullKeys, isLogical)
}

func FromXrefKeyArray(blobText string) (models, elements []string, err error) {
	return batch.FromXrefKeyArray(blobText)
}

// ToSystemID returns fullKeyText unchanged, after logging, when it cannot be decoded.
func ToSystemID(fullKeyText string) string {
	return sysid.ToSystemID(fullKeyText)
}

// SetLogger installs the logger used for codec diagnostics.
func SetLogger(l *zap.Logger) {
	core.SetLogger(l)
}
