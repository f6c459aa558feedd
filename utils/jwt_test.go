package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(7, "Maria", "staff")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "Maria", claims.Name)
	assert.Equal(t, "staff", claims.Role)
}

func TestParseTokenRejects(t *testing.T) {
	_, err := ParseToken("garbage")
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{
		UserID: 1,
		Name:   "Maria",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    tokenIssuer,
		},
	})
	signed, err := expired.SignedString(jwtSecret)
	require.NoError(t, err)
	_, err = ParseToken(signed)
	assert.Error(t, err)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{
		UserID:           1,
		Name:             "Maria",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer},
	})
	signed, err = forged.SignedString([]byte("someone else's key"))
	require.NoError(t, err)
	_, err = ParseToken(signed)
	assert.Error(t, err)
}
