package sysid

import (
	"math"
	"testing"

	"github.com/agenthands/dtmkey/internal/testkit"
	"github.com/agenthands/dtmkey/pkg/core"
	"github.com/agenthands/dtmkey/pkg/elemkey"
	"github.com/agenthands/dtmkey/pkg/websafe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func fullKeyWithLow(v uint32) core.FullKey {
	k := testkit.FullKey(false)
	k[20] = byte(v >> 24)
	k[21] = byte(v >> 16)
	k[22] = byte(v >> 8)
	k[23] = byte(v)
	return k
}

func TestEncode(t *testing.T) {
	tests := []struct {
		v    uint32
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{math.MaxUint32, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}

	for _, tt := range tests {
		got := Encode(tt.v)
		assert.Equal(t, tt.want, got, "Encode(%d)", tt.v)
		assert.LessOrEqual(t, len(got), core.MaxSystemIDSize)
	}
}

func TestToSystemID(t *testing.T) {
	k := fullKeyWithLow(300)
	text := elemkey.EncodeFullKey(k)

	id := ToSystemID(text)
	assert.Equal(t, websafe.Encode([]byte{0xac, 0x02}), id)
	assert.Equal(t, id, ToSystemID(text), "ToSystemID must be deterministic")

	v, err := Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uint32(300), v)
}

func TestRoundTrip(t *testing.T) {
	r := testkit.RNG(9)
	for i := 0; i < 200; i++ {
		v := r.Uint32()
		id, err := Derive(elemkey.EncodeFullKey(fullKeyWithLow(v)))
		require.NoError(t, err)
		require.NotContains(t, id, "=")

		got, err := Parse(id)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestFallback(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	core.SetLogger(zap.New(obs))
	t.Cleanup(func() { core.SetLogger(nil) })

	for _, in := range []string{"%%%", "A", websafe.Encode(make([]byte, 3))} {
		assert.Equal(t, in, ToSystemID(in))
	}
	assert.Equal(t, 3, logs.Len())

	_, err := Derive("%%%")
	assert.ErrorIs(t, err, core.ErrInvalidEncoding)

	_, err = Derive(websafe.Encode(make([]byte, 20)))
	assert.ErrorIs(t, err, core.ErrInvalidKeyLength)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want error
	}{
		{"Empty", []byte{}, core.ErrInvalidEncoding},
		{"Unterminated", []byte{0x80, 0x80}, core.ErrInvalidEncoding},
		{"TrailingBytes", []byte{0x01, 0x02}, core.ErrInvalidEncoding},
		{"Overflow32", []byte{0x80, 0x80, 0x80, 0x80, 0x10}, core.ErrInvalidEncoding},
		{"TooLong", make([]byte, 10), core.ErrInvalidKeyLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(websafe.Encode(tt.raw))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
