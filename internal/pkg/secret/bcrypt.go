// Package secret hashes and verifies account passwords and one-time codes.
package secret

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher is a bcrypt-backed one-way hash.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using cost, or bcrypt.DefaultCost when cost is
// outside bcrypt's accepted range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *Hasher) Verify(plaintext, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
