package core

import (
	"encoding/binary"
)

// Fixed sizes of the binary key records.
const (
	FlagsSize       = 4
	ShortKeySize    = 20
	FullKeySize     = FlagsSize + ShortKeySize
	ModelKeySize    = 16
	XrefKeySize     = ModelKeySize + FullKeySize
	MaxSystemIDSize = 9
)

// ModelURNPrefix precedes the web-safe model key in a model URN.
const ModelURNPrefix = "urn:adsk.dtm:"

// Flags is the big-endian flag word at the head of a FullKey.
type Flags uint32

const (
	FlagPhysical Flags = 0x00000000
	FlagLogical  Flags = 0x01000000
)

// FlagsFor returns the flag word for a logical or physical element.
func FlagsFor(isLogical bool) Flags {
	if isLogical {
		return FlagLogical
	}
	return FlagPhysical
}

// Put writes f big-endian into the first four bytes of b.
func (f Flags) Put(b []byte) {
	binary.BigEndian.PutUint32(b, uint32(f))
}

// ShortKey is the flag-less identifier of an element within its model.
type ShortKey [ShortKeySize]byte

// FullKey is a ShortKey prefixed with its flag word.
type FullKey [FullKeySize]byte

// NewFullKey packs a flag word and a ShortKey into a FullKey.
func NewFullKey(short ShortKey, flags Flags) FullKey {
	var k FullKey
	flags.Put(k[:FlagsSize])
	copy(k[FlagsSize:], short[:])
	return k
}

func (k FullKey) Flags() Flags {
	return Flags(binary.BigEndian.Uint32(k[:FlagsSize]))
}

func (k FullKey) IsLogical() bool {
	return k.Flags() == FlagLogical
}

func (k FullKey) Short() ShortKey {
	var s ShortKey
	copy(s[:], k[FlagsSize:])
	return s
}

// Low32 returns the last four bytes of the key as a big-endian integer.
func (k FullKey) Low32() uint32 {
	return binary.BigEndian.Uint32(k[FullKeySize-4:])
}

// ModelKey identifies a model.
type ModelKey [ModelKeySize]byte

// XrefKey references an element living in another model.
type XrefKey [XrefKeySize]byte

func NewXrefKey(model ModelKey, element FullKey) XrefKey {
	var x XrefKey
	copy(x[:ModelKeySize], model[:])
	copy(x[ModelKeySize:], element[:])
	return x
}

func (x XrefKey) Model() ModelKey {
	var m ModelKey
	copy(m[:], x[:ModelKeySize])
	return m
}

func (x XrefKey) Element() FullKey {
	var k FullKey
	copy(k[:], x[ModelKeySize:])
	return k
}
