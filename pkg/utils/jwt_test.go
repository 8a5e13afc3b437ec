package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManagerIssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, issued, err := m.Issue("64b7f0c2a1b2c3d4e5f60718")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.Subject)
	assert.Equal(t, issued.ID, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenManagerUniqueIDs(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	_, a, err := m.Issue("user")
	require.NoError(t, err)
	_, b, err := m.Issue("user")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTokenManagerRejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, _, err := m.Issue("user")
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := m.Parse("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenManager("other", time.Hour).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewTokenManager("secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "user",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = m.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
