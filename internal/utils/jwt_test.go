package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessTokenCarriesClaims(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, "ARTIST", 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	parsed, err := jwt.Parse(tok.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "ARTIST", claims["role"])
}

func TestRefreshTokenHashIsStable(t *testing.T) {
	tok, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.Len(t, tok.Raw, 96) // 48 random bytes, hex encoded

	assert.Equal(t, HashRefreshRaw(tok.Raw), HashRefreshRaw(tok.Raw))
	other, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.NotEqual(t, HashRefreshRaw(tok.Raw), HashRefreshRaw(other.Raw))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}
