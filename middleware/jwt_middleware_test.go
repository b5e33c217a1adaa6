package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, refreshToken, err := GenerateJWT("64f000000000000000000001", "9999999999", "user@gmail.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, refreshToken)
	assert.NotEqual(t, token, refreshToken)

	parsed, err := jwt.ParseWithClaims(token, &JwtCustomClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(*JwtCustomClaims)
	require.True(t, ok)
	assert.Equal(t, "64f000000000000000000001", claims.UserID)
	assert.Equal(t, "9999999999", claims.Phone)
	assert.Equal(t, "user@gmail.com", claims.Email)
}

func TestGenerateJWTRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, _, err := GenerateJWT("id", "phone", "email")
	assert.Error(t, err)
}

func TestTokenBlacklist(t *testing.T) {
	token := "blacklist-test-token"

	assert.False(t, IsTokenBlacklisted(token))
	BlacklistToken(token, time.Now().Add(time.Hour))
	assert.True(t, IsTokenBlacklisted(token))
}

func TestClaimsValid(t *testing.T) {
	valid := JwtCustomClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}
	assert.NoError(t, valid.Valid())

	expired := JwtCustomClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	}
	assert.Error(t, expired.Valid())
}
