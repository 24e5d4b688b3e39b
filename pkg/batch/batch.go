// Package batch splits encoded blobs of concatenated fixed-size key records
// into individual encoded keys, and packs keys back into such blobs.
//
// A trailing partial record is dropped without error.
package batch

import (
	"fmt"

	"github.com/agenthands/dtmkey/pkg/core"
	"github.com/agenthands/dtmkey/pkg/elemkey"
	"github.com/agenthands/dtmkey/pkg/websafe"
	"github.com/agenthands/dtmkey/pkg/xref"
)

// FromShortKeyArray splits a blob of 20-byte short keys. With useFullKeys
// set, each key is prefixed with the flag word chosen by isLogical.
func FromShortKeyArray(blobText string, useFullKeys, isLogical bool) ([]string, error) {
	blob, err := websafe.Decode(blobText)
	if err != nil {
		return nil, err
	}

	n := len(blob) / core.ShortKeySize
	keys := make([]string, 0, n)
	flags := core.FlagsFor(isLogical)

	for off := 0; off+core.ShortKeySize <= len(blob); off += core.ShortKeySize {
		var short core.ShortKey
		copy(short[:], blob[off:off+core.ShortKeySize])

		if useFullKeys {
			keys = append(keys, elemkey.EncodeFullKey(core.NewFullKey(short, flags)))
		} else {
			keys = append(keys, elemkey.EncodeShortKey(short))
		}
	}
	return keys, nil
}

// FromXrefKeyArray splits a blob of 40-byte xref records into index-aligned
// lists of encoded model keys and encoded full element keys.
func FromXrefKeyArray(blobText string) (models, elements []string, err error) {
	models, elements = []string{}, []string{}
	if blobText == "" {
		return models, elements, nil
	}

	blob, err := websafe.Decode(blobText)
	if err != nil {
		return nil, nil, err
	}

	for off := 0; off+core.XrefKeySize <= len(blob); off += core.XrefKeySize {
		rec := blob[off : off+core.XrefKeySize]
		models = append(models, websafe.Encode(rec[:core.ModelKeySize]))
		elements = append(elements, websafe.Encode(rec[core.ModelKeySize:]))
	}
	return models, elements, nil
}

// ToShortKeyArray concatenates encoded short keys into one encoded blob.
func ToShortKeyArray(keys []string) (string, error) {
	blob := make([]byte, 0, len(keys)*core.ShortKeySize)
	for i, text := range keys {
		k, err := elemkey.ParseShortKey(text)
		if err != nil {
			return "", fmt.Errorf("key %d: %w", i, err)
		}
		blob = append(blob, k[:]...)
	}
	return websafe.Encode(blob), nil
}

// ToXrefKeyArray packs index-aligned encoded model keys and full element keys
// into one encoded blob of xref records. It is the inverse of FromXrefKeyArray.
func ToXrefKeyArray(models, elements []string) (string, error) {
	if len(models) != len(elements) {
		return "", fmt.Errorf("%w: %d model keys for %d element keys", core.ErrInvalidInput, len(models), len(elements))
	}

	blob := make([]byte, 0, len(models)*core.XrefKeySize)
	for i := range models {
		m, err := xref.ParseModelURN(core.ModelURNPrefix + models[i])
		if err != nil {
			return "", fmt.Errorf("record %d: %w", i, err)
		}
		k, err := elemkey.ParseFullKey(elements[i])
		if err != nil {
			return "", fmt.Errorf("record %d: %w", i, err)
		}
		x := core.NewXrefKey(m, k)
		blob = append(blob, x[:]...)
	}
	return websafe.Encode(blob), nil
}
