package testkit

import (
	"math/rand"
	"time"

	"github.com/agenthands/dtmkey/pkg/core"
	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

// RNG provides a deterministic random number generator.
// If seed is 0, it uses the current time.
func RNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomBytes generates a slice of random bytes of the given length.
func RandomBytes(r *rand.Rand, length int) []byte {
	b := make([]byte, length)
	for i := range b {
		b[i] = byte(r.Intn(256))
	}
	return b
}

// ShortKey returns a fresh, unique element id. KSUIDs are exactly 20 bytes.
func ShortKey() core.ShortKey {
	return core.ShortKey(ksuid.New())
}

// FullKey returns a fresh element key carrying the physical or logical flag word.
func FullKey(isLogical bool) core.FullKey {
	return core.NewFullKey(ShortKey(), core.FlagsFor(isLogical))
}

// ModelKey returns a fresh random model id. UUIDs are exactly 16 bytes.
func ModelKey() core.ModelKey {
	return core.ModelKey(uuid.New())
}

// XrefKey returns a reference to a fresh element inside a fresh model.
func XrefKey(isLogical bool) core.XrefKey {
	return core.NewXrefKey(ModelKey(), FullKey(isLogical))
}

// ShortKeyBlob concatenates n random short keys and returns the raw blob.
func ShortKeyBlob(n int) []byte {
	blob := make([]byte, 0, n*core.ShortKeySize)
	for i := 0; i < n; i++ {
		k := ShortKey()
		blob = append(blob, k[:]...)
	}
	return blob
}
