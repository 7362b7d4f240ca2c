// Package token generates opaque credentials and owns their expiry policy.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Kind identifies a token family with a fixed validity window.
type Kind string

const (
	KindSession           Kind = "session"
	KindEmailVerification Kind = "email_verification"
	KindPasswordReset     Kind = "password_reset"
	KindShareLink         Kind = "share_link"
)

// Byte lengths per kind. All are well above the 16-byte floor so two tokens
// cannot plausibly collide.
const (
	SessionBytes           = 64
	EmailVerificationBytes = 32
	PasswordResetBytes     = 32
	ShareLinkBytes         = 32

	minBytes = 16
)

// Validity windows per kind. These are business rules, not call-time options.
const (
	SessionTTL           = 7 * 24 * time.Hour
	EmailVerificationTTL = 24 * time.Hour
	PasswordResetTTL     = time.Hour
	ShareLinkTTL         = 7 * 24 * time.Hour
)

// Generate returns a hex-encoded token read from the crypto/rand source.
// byteLength must be at least 16.
func Generate(byteLength int) (string, error) {
	if byteLength < minBytes {
		return "", fmt.Errorf("token length %d below minimum %d bytes", byteLength, minBytes)
	}
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateFor returns a fresh token of the standard length for the kind.
func GenerateFor(kind Kind) (string, error) {
	return Generate(bytesFor(kind))
}

func bytesFor(kind Kind) int {
	switch kind {
	case KindSession:
		return SessionBytes
	case KindEmailVerification:
		return EmailVerificationBytes
	case KindPasswordReset:
		return PasswordResetBytes
	case KindShareLink:
		return ShareLinkBytes
	default:
		return minBytes
	}
}

// TTLFor returns the validity window for the kind.
func TTLFor(kind Kind) time.Duration {
	switch kind {
	case KindSession:
		return SessionTTL
	case KindEmailVerification:
		return EmailVerificationTTL
	case KindPasswordReset:
		return PasswordResetTTL
	case KindShareLink:
		return ShareLinkTTL
	default:
		return 0
	}
}

// ExpiryFor returns the policy-table deadline for a token issued at now.
func ExpiryFor(kind Kind, now time.Time) time.Time {
	return now.Add(TTLFor(kind))
}

// Expired reports whether the deadline has passed at now. A token whose
// expiry equals now exactly is still valid.
func Expired(expiresAt, now time.Time) bool {
	return now.After(expiresAt)
}
