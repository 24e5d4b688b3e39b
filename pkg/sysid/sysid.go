// Package sysid derives compact system ids from full element keys.
//
// A system id is the uvarint (7 data bits per byte, high bit set on every
// byte but the last) of the big-endian uint32 held in the last four bytes of
// a full key, written as web-safe base64.
package sysid

import (
	"fmt"

	"github.com/agenthands/dtmkey/pkg/core"
	"github.com/agenthands/dtmkey/pkg/elemkey"
	"github.com/agenthands/dtmkey/pkg/websafe"
	"github.com/multiformats/go-varint"
	"go.uber.org/zap"
)

// Encode returns the varint bytes of v.
func Encode(v uint32) []byte {
	b := varint.ToUvarint(uint64(v))
	if len(b) > core.MaxSystemIDSize {
		panic(fmt.Sprintf("sysid: varint of %d is %d bytes", v, len(b)))
	}
	return b
}

// FromFullKey returns the encoded system id of k.
func FromFullKey(k core.FullKey) string {
	return websafe.Encode(Encode(k.Low32()))
}

// Derive is ToSystemID with an explicit error.
func Derive(fullKeyText string) (string, error) {
	k, err := elemkey.ParseFullKey(fullKeyText)
	if err != nil {
		return "", err
	}
	return FromFullKey(k), nil
}

// ToSystemID returns the system id of an encoded full key. If the key cannot
// be decoded the failure is logged and fullKeyText is returned unchanged.
func ToSystemID(fullKeyText string) string {
	id, err := Derive(fullKeyText)
	if err != nil {
		core.Logger().Warn("cannot derive system id, returning key unchanged",
			zap.String("key", fullKeyText),
			zap.Error(err))
		return fullKeyText
	}
	return id
}

// Parse decodes an encoded system id back to its 32-bit value.
func Parse(idText string) (uint32, error) {
	b, err := websafe.Decode(idText)
	if err != nil {
		return 0, err
	}
	if len(b) > core.MaxSystemIDSize {
		return 0, fmt.Errorf("%w: system id has %d bytes", core.ErrInvalidKeyLength, len(b))
	}
	v, n, err := varint.FromUvarint(b)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", core.ErrInvalidEncoding, err)
	}
	if n != len(b) {
		return 0, fmt.Errorf("%w: %d trailing bytes after system id", core.ErrInvalidEncoding, len(b)-n)
	}
	if v > 0xffffffff {
		return 0, fmt.Errorf("%w: system id %d overflows 32 bits", core.ErrInvalidEncoding, v)
	}
	return uint32(v), nil
}
