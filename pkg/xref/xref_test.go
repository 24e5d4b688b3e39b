package xref

import (
	"errors"
	"strings"
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

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	obs, logs := observer.New(zapcore.DebugLevel)
	core.SetLogger(zap.New(obs))
	t.Cleanup(func() { core.SetLogger(nil) })
	return logs
}

func TestMakeDecodeRoundTrip(t *testing.T) {
	for i := 0; i < 50; i++ {
		urn := ModelURN(testkit.ModelKey())
		element := elemkey.EncodeFullKey(testkit.FullKey(i%2 == 1))

		text, err := Make(urn, element)
		require.NoError(t, err)
		require.NotContains(t, text, "=")

		x, ok := Decode(text)
		require.True(t, ok)
		assert.Equal(t, Xref{ModelURN: urn, ElementKey: element}, x)
	}
}

func TestLayout(t *testing.T) {
	m := testkit.ModelKey()
	k := testkit.FullKey(true)

	text, err := Make(ModelURN(m), elemkey.EncodeFullKey(k))
	require.NoError(t, err)

	raw, err := websafe.Decode(text)
	require.NoError(t, err)
	require.Len(t, raw, core.XrefKeySize)
	assert.Equal(t, m[:], raw[:16])
	assert.Equal(t, k[:], raw[16:])
}

func TestDecodeShortRecord(t *testing.T) {
	logs := observeLogs(t)

	_, ok := Decode(websafe.Encode(make([]byte, 39)))
	assert.False(t, ok)

	_, ok = Decode("***")
	assert.False(t, ok)

	assert.Equal(t, 2, logs.FilterMessage("invalid xref key").Len())
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	logs := observeLogs(t)
	x := testkit.XrefKey(true)
	want := Xref{
		ModelURN:   ModelURN(x.Model()),
		ElementKey: elemkey.EncodeFullKey(x.Element()),
	}

	for _, extra := range []int{1, 16} {
		raw := append(x[:], make([]byte, extra)...)
		got, ok := Decode(websafe.Encode(raw))
		require.True(t, ok, "%d trailing bytes", extra)
		assert.Equal(t, want, got)

		parsed, err := Parse(websafe.Encode(raw))
		require.NoError(t, err)
		assert.Equal(t, want, parsed)
	}
	assert.Zero(t, logs.Len())

	// Keys handed to the index must still be exactly one record.
	_, err := ParseKey(websafe.Encode(append(x[:], 0)))
	assert.ErrorIs(t, err, core.ErrInvalidKeyLength)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(websafe.Encode(make([]byte, 12)))
	assert.True(t, errors.Is(err, core.ErrInvalidKeyLength))

	_, err = Parse(websafe.Encode(make([]byte, 39)))
	assert.True(t, errors.Is(err, core.ErrInvalidKeyLength))

	_, err = Parse("a b")
	assert.True(t, errors.Is(err, core.ErrInvalidEncoding))
}

func TestModelURN(t *testing.T) {
	m := testkit.ModelKey()
	urn := ModelURN(m)
	require.True(t, strings.HasPrefix(urn, "urn:adsk.dtm:"))

	got, err := ParseModelURN(urn)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	tests := []struct {
		name string
		urn  string
		want error
	}{
		{"MissingPrefix", websafe.Encode(m[:]), core.ErrInvalidURN},
		{"WrongNamespace", "urn:adsk.wipp:" + websafe.Encode(m[:]), core.ErrInvalidURN},
		{"ShortModelKey", core.ModelURNPrefix + websafe.Encode(m[:8]), core.ErrInvalidKeyLength},
		{"Garbage", core.ModelURNPrefix + "!!", core.ErrInvalidEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModelURN(tt.urn)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMakeRejectsBadElementKey(t *testing.T) {
	urn := ModelURN(testkit.ModelKey())

	_, err := Make(urn, elemkey.EncodeShortKey(testkit.ShortKey()))
	assert.ErrorIs(t, err, core.ErrInvalidKeyLength)

	_, err = Make(urn, "@@")
	assert.ErrorIs(t, err, core.ErrInvalidEncoding)
}

func TestMakeAcceptsPaddedText(t *testing.T) {
	m := testkit.ModelKey()
	k := testkit.FullKey(false)

	// 16 bytes encode to 22 characters plus two padding characters.
	padded := core.ModelURNPrefix + websafe.Encode(m[:]) + "=="
	text, err := Make(padded, elemkey.EncodeFullKey(k))
	require.NoError(t, err)

	x, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, ModelURN(m), x.ModelURN)
}
