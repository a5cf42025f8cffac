package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	InitJWT("access-secret", "refresh-secret", time.Minute, time.Hour)

	token, err := GenerateAccessToken(42, "doctor")
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "doctor", claims.Role)
}

func TestValidateAccessTokenRejectsForeignSecret(t *testing.T) {
	InitJWT("first-secret", "refresh-secret", time.Minute, time.Hour)
	token, err := GenerateAccessToken(1, "admin")
	require.NoError(t, err)

	InitJWT("second-secret", "refresh-secret", time.Minute, time.Hour)
	_, err = ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessTokenRejectsExpired(t *testing.T) {
	InitJWT("access-secret", "refresh-secret", -time.Minute, time.Hour)
	token, err := GenerateAccessToken(1, "doctor")
	require.NoError(t, err)

	_, err = ValidateAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestRefreshTokenHashing(t *testing.T) {
	InitJWT("access-secret", "refresh-secret", time.Minute, time.Hour)

	a, err := GenerateRefreshToken()
	require.NoError(t, err)
	b, err := GenerateRefreshToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, HashRefreshToken(a), HashRefreshToken(a))
	assert.NotEqual(t, HashRefreshToken(a), HashRefreshToken(b))
	assert.Len(t, HashRefreshToken(a), 64)
	assert.Equal(t, time.Hour, GetRefreshTokenExpiry())
}
