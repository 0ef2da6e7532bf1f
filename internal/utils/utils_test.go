package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"
	at, err := NewAccessToken(secret, 42, "officer", 15)
	require.NoError(t, err)
	assert.True(t, at.Exp.After(time.Now()))

	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "officer", claims["role"])
}

func TestRefreshTokenShape(t *testing.T) {
	rt, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96)
	assert.True(t, rt.Exp.After(time.Now().Add(6*24*time.Hour)))

	other, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.NotEqual(t, rt.Raw, other.Raw)
}

func TestHashRefreshRawDeterministic(t *testing.T) {
	a := HashRefreshRaw("token")
	b := HashRefreshRaw("token")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, HashRefreshRaw("other"))
}

func TestNewOTPCode(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := NewOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', code)
		}
	}
}
