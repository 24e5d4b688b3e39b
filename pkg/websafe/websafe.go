// Package websafe converts raw key bytes to and from the URL-safe, unpadded
// base64 text used wherever keys cross an API or UI boundary.
package websafe

import (
	"fmt"
	"strings"

	"github.com/agenthands/dtmkey/pkg/core"
	"github.com/multiformats/go-multibase"
)

var (
	encoder = multibase.MustNewEncoder(multibase.Base64url)
	prefix  = string(rune(multibase.Base64url))

	// Standard alphabet characters are folded into the URL-safe ones.
	toURLAlphabet = strings.NewReplacer("+", "-", "/", "_")
)

// Encode returns b as URL-safe base64 without padding.
func Encode(b []byte) string {
	return encoder.Encode(b)[len(prefix):]
}

// Decode parses web-safe base64. Padded or unpadded input is accepted, as is
// the standard '+' and '/' alphabet. The empty string decodes to an empty
// buffer. Line breaks are malformed input like any other character outside
// the alphabet. Decode does not validate the length of the result.
func Decode(s string) ([]byte, error) {
	// The underlying base64 decoder skips CR and LF.
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return nil, fmt.Errorf("%w: illegal character at offset %d", core.ErrInvalidEncoding, i)
	}
	s = strings.TrimRight(toURLAlphabet.Replace(s), "=")

	_, b, err := multibase.Decode(prefix + s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidEncoding, err)
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

// DecodeSize decodes s and requires the result to be exactly n bytes long.
func DecodeSize(s string, n int) ([]byte, error) {
	b, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", core.ErrInvalidKeyLength, len(b), n)
	}
	return b, nil
}
