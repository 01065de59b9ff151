package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateAndValidate(t *testing.T) {
	secret := "super-secret-key-for-testing"
	issuer := "https://project.supabase.co/auth/v1"
	userID := "6a1d2f0e-8a57-4c43-9d3c-1f0e2b7c9a11"

	service := NewTokenService(secret, issuer, "authenticated", time.Hour)

	t.Run("Success: Should generate and validate a token", func(t *testing.T) {
		tokenString, err := service.GenerateToken(userID, "runner@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, tokenString)

		identity, err := service.ValidateToken(tokenString)
		require.NoError(t, err)
		assert.Equal(t, userID, identity.UserID)
		assert.Equal(t, "runner@example.com", identity.Email)
	})

	t.Run("Fail: Expired token", func(t *testing.T) {
		expired := NewTokenService(secret, issuer, "authenticated", -time.Minute)
		tokenString, err := expired.GenerateToken(userID, "")
		require.NoError(t, err)

		_, err = service.ValidateToken(tokenString)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("Fail: Wrong secret", func(t *testing.T) {
		attacker := NewTokenService("wrong-secret", issuer, "authenticated", time.Hour)
		tokenString, _ := attacker.GenerateToken(userID, "")

		_, err := service.ValidateToken(tokenString)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("Fail: Wrong issuer", func(t *testing.T) {
		other := NewTokenService(secret, "someone-else", "authenticated", time.Hour)
		tokenString, _ := other.GenerateToken(userID, "")

		_, err := service.ValidateToken(tokenString)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})

	t.Run("Fail: Wrong audience", func(t *testing.T) {
		other := NewTokenService(secret, issuer, "anon", time.Hour)
		tokenString, _ := other.GenerateToken(userID, "")

		_, err := service.ValidateToken(tokenString)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidAudience)
	})

	t.Run("Fail: Missing subject", func(t *testing.T) {
		tokenString, _ := service.GenerateToken("", "")

		_, err := service.ValidateToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("Fail: Unexpected signing method", func(t *testing.T) {
		claims := jwt.MapClaims{"sub": userID, "exp": time.Now().Add(time.Hour).Unix(), "iss": issuer, "aud": "authenticated"}
		token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
		tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.ValidateToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("Fail: Garbage", func(t *testing.T) {
		_, err := service.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}
