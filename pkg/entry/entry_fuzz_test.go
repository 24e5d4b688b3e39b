package entry

import (
	"testing"

	"github.com/agenthands/dtmkey/pkg/core"
)

func FuzzEntryDecode(f *testing.F) {
	codec := NewCodec(core.LimitsConfig{
		MaxLabelLen:  64,
		MaxTags:      10,
		MaxTagKeyLen: 64,
		MaxTagValLen: 256,
	})

	e := &EntryV1{
		Version:  1,
		Logical:  true,
		SystemID: []byte{0x80, 0x01},
		Label:    "AHU-3",
	}
	encoded, _ := codec.Encode(e)
	f.Add(encoded)
	f.Add([]byte("garbage input"))
	f.Add([]byte{})
	f.Add([]byte{0xa1, 0x61, 0x76, 0x01})

	f.Fuzz(func(t *testing.T, data []byte) {
		// Untrusted index values must not panic the decoder.
		_, _ = codec.Decode(data)
	})
}
