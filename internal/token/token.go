// Package token mints single-use password-reset tokens for partner
// onboarding. The raw token goes into the emailed link; only its SHA-256 is
// ever persisted.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// TTL is how long a freshly minted reset token stays valid.
const TTL = 24 * time.Hour

type ResetToken struct {
	Raw       string // hex, emailed inside the reset link
	Hashed    string // sha256 hex, the only value written to the database
	ExpiresAt time.Time
}

// NewResetToken generates 32 random bytes, hex-encodes them as the raw token
// and hashes that for storage.
func NewResetToken(now time.Time) (*ResetToken, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}
	raw := hex.EncodeToString(buf)
	return &ResetToken{
		Raw:       raw,
		Hashed:    Hash(raw),
		ExpiresAt: now.Add(TTL),
	}, nil
}

// Hash returns the hex-encoded SHA-256 of a raw token.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ResetURL builds the partner password-reset link carrying the raw token.
func ResetURL(baseURL, raw string) string {
	return fmt.Sprintf("%s/partner/reset-password?token=%s", baseURL, raw)
}
