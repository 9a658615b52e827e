package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key"

func TestGenerateAndParseToken(t *testing.T) {
	tokenString, err := GenerateToken("user-123", testSecret, TokenExpiration)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := ParseToken(tokenString, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.Greater(t, claims.ExpiresAt, time.Now().Unix())
}

func TestParseTokenWrongSecret(t *testing.T) {
	tokenString, err := GenerateToken("user-123", testSecret, TokenExpiration)
	require.NoError(t, err)

	claims, err := ParseToken(tokenString, "a_different_secret")
	assert.Error(t, err)
	assert.NotEqual(t, ErrExpired, err)
	assert.Nil(t, claims)
}

func TestParseTokenExpired(t *testing.T) {
	tokenString, err := GenerateToken("user-123", testSecret, -time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(tokenString, testSecret)
	assert.Equal(t, ErrExpired, err)
	assert.Nil(t, claims)
}

func TestParseTokenGarbage(t *testing.T) {
	claims, err := ParseToken("not.a.token", testSecret)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
