package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerify(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	raw, err := iss.Issue("65f0c0ffee", "author")
	require.NoError(t, err)

	claims, err := iss.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "65f0c0ffee", claims.AccountID)
	assert.Equal(t, "author", claims.Role)
	assert.Equal(t, "65f0c0ffee", claims.Subject)
}

func TestVerify_Expired(t *testing.T) {
	iss := NewIssuer("secret", time.Minute)
	start := time.Now()
	iss.now = func() time.Time { return start }

	raw, err := iss.Issue("id-1", "client")
	require.NoError(t, err)

	iss.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = iss.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	raw, err := NewIssuer("one", time.Hour).Issue("id-1", "client")
	require.NoError(t, err)

	_, err = NewIssuer("two", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{AccountID: "id-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := NewIssuer("secret", time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
