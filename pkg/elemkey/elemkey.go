// Package elemkey converts element keys between their 20-byte short form and
// the 24-byte full form that carries the physical/logical flag word.
package elemkey

import (
	"github.com/agenthands/dtmkey/pkg/core"
	"github.com/agenthands/dtmkey/pkg/websafe"
)

// ParseShortKey decodes web-safe text that must hold exactly 20 bytes.
func ParseShortKey(text string) (core.ShortKey, error) {
	var k core.ShortKey
	b, err := websafe.DecodeSize(text, core.ShortKeySize)
	if err != nil {
		return k, err
	}
	copy(k[:], b)
	return k, nil
}

// ParseFullKey decodes web-safe text that must hold exactly 24 bytes.
func ParseFullKey(text string) (core.FullKey, error) {
	var k core.FullKey
	b, err := websafe.DecodeSize(text, core.FullKeySize)
	if err != nil {
		return k, err
	}
	copy(k[:], b)
	return k, nil
}

func EncodeShortKey(k core.ShortKey) string { return websafe.Encode(k[:]) }
func EncodeFullKey(k core.FullKey) string   { return websafe.Encode(k[:]) }

// ToShortKey strips the flag word from an encoded full key.
func ToShortKey(fullKeyText string) (string, error) {
	k, err := ParseFullKey(fullKeyText)
	if err != nil {
		return "", err
	}
	return EncodeShortKey(k.Short()), nil
}

// ToFullKey prefixes an encoded short key with the physical or logical flag word.
func ToFullKey(shortKeyText string, isLogical bool) (string, error) {
	k, err := ParseShortKey(shortKeyText)
	if err != nil {
		return "", err
	}
	return EncodeFullKey(core.NewFullKey(k, core.FlagsFor(isLogical))), nil
}

// FlagsOf returns the flag word of an encoded full key.
func FlagsOf(fullKeyText string) (core.Flags, error) {
	k, err := ParseFullKey(fullKeyText)
	if err != nil {
		return 0, err
	}
	return k.Flags(), nil
}
