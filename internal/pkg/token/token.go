// Package token issues and verifies the HS256 bearer tokens carried on
// protected requests.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims embeds the account id and role alongside the registered claims.
type Claims struct {
	AccountID string `json:"id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for accountID valid for the issuer's TTL.
func (i *Issuer) Issue(accountID, role string) (string, error) {
	now := i.now()
	claims := Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify parses raw and returns its claims. Expired tokens, foreign
// algorithms and bad signatures all yield ErrInvalidToken.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.AccountID == "" {
		return nil, fmt.Errorf("%w: missing account id", ErrInvalidToken)
	}
	return claims, nil
}
