package token

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetToken(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	tok, err := NewResetToken(now)
	require.NoError(t, err)

	// 32 random bytes, hex-encoded.
	raw, err := hex.DecodeString(tok.Raw)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	assert.Equal(t, Hash(tok.Raw), tok.Hashed)
	assert.NotEqual(t, tok.Raw, tok.Hashed)
	assert.Equal(t, now.Add(TTL), tok.ExpiresAt)
}

func TestNewResetTokenIsUnique(t *testing.T) {
	now := time.Now()
	a, err := NewResetToken(now)
	require.NoError(t, err)
	b, err := NewResetToken(now)
	require.NoError(t, err)

	assert.NotEqual(t, a.Raw, b.Raw)
	assert.NotEqual(t, a.Hashed, b.Hashed)
}

func TestHashIsStable(t *testing.T) {
	assert.Equal(t, Hash("abc"), Hash("abc"))
	assert.NotEqual(t, Hash("abc"), Hash("abd"))

	// sha256 hex is 64 chars.
	assert.Len(t, Hash("anything"), 64)
}

func TestResetURL(t *testing.T) {
	url := ResetURL("https://drivana.com", "deadbeef")
	assert.Equal(t, "https://drivana.com/partner/reset-password?token=deadbeef", url)
}
