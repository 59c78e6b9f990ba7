// Package otp issues and checks the numeric codes used for password resets.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	// DefaultTTL is how long an issued code stays usable.
	DefaultTTL = 5 * time.Minute
	digits     = 6
)

// Code is a freshly generated one-time code. Value is plaintext and must
// only ever leave the process by mail.
type Code struct {
	Value     string
	ExpiresAt time.Time
}

// Checker verifies a plaintext against a stored digest.
type Checker interface {
	Verify(plaintext, digest string) bool
}

// Generator produces codes and validates them against stored digests.
type Generator struct {
	ttl     time.Duration
	checker Checker
	now     func() time.Time
}

func NewGenerator(ttl time.Duration, checker Checker) *Generator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Generator{ttl: ttl, checker: checker, now: time.Now}
}

// Generate returns a six digit code expiring ttl from now.
func (g *Generator) Generate() (Code, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return Code{}, fmt.Errorf("otp: %w", err)
	}
	return Code{
		Value:     fmt.Sprintf("%0*d", digits, n.Int64()),
		ExpiresAt: g.now().Add(g.ttl).UTC(),
	}, nil
}

// Valid fails when no digest is stored, the code is past expiresAt, or the
// supplied code does not match the digest.
func (g *Generator) Valid(digest, supplied string, expiresAt time.Time) bool {
	if digest == "" || supplied == "" {
		return false
	}
	if g.now().After(expiresAt) {
		return false
	}
	return g.checker.Verify(supplied, digest)
}
