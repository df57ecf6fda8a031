package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateAccessToken(t *testing.T) {
	token, err := GenerateAccessToken("nick", testSecret, 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "nick", claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestValidateToken_TypeConfusion(t *testing.T) {
	refreshToken, err := GenerateRefreshToken("nick", testSecret, 7*24*time.Hour)
	require.NoError(t, err)

	// A refresh token must never pass as an access token and vice versa
	_, err = ValidateToken(refreshToken, testSecret, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	accessToken, err := GenerateAccessToken("nick", testSecret, 15*time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(accessToken, testSecret, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken("nick", testSecret, -1*time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret, TokenTypeAccess)
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("nick", testSecret, 15*time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret", TokenTypeAccess)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret, TokenTypeAccess)
	assert.Error(t, err)
}

func TestGenerateEmailToken(t *testing.T) {
	token, err := GenerateEmailToken("nick@example.com", testSecret, 7*24*time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret, TokenTypeEmail)
	require.NoError(t, err)
	assert.Equal(t, "nick@example.com", claims.Subject)

	// An email token is single-purpose
	_, err = ValidateToken(token, testSecret, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}
