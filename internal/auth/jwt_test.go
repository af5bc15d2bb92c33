package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_Generate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		token, err := NewTokenManager("testsecret").Generate(42)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("NoSecret", func(t *testing.T) {
		_, err := NewTokenManager("").Generate(42)
		assert.ErrorIs(t, err, ErrMissingSecret)
	})
}

func TestTokenManager_Parse(t *testing.T) {
	tm := NewTokenManager("testsecret")
	tokenStr, err := tm.Generate(42)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		claims, err := tm.Parse(tokenStr)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.WithinDuration(t, time.Now().Add(SessionTTL), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tm.Parse("invalid-token-string")
		assert.Error(t, err)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		_, err := NewTokenManager("other").Parse(tokenStr)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "signature is invalid")
	})

	t.Run("Expired", func(t *testing.T) {
		old := NewTokenManager("testsecret")
		old.now = func() time.Time { return time.Now().Add(-2 * SessionTTL) }
		expired, err := old.Generate(42)
		require.NoError(t, err)

		_, err = tm.Parse(expired)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("MissingUserID", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("testsecret"))
		require.NoError(t, err)

		_, err = tm.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("NoneAlgorithmRejected", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"userId": 42}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tm.Parse(raw)
		assert.Error(t, err)
	})
}
