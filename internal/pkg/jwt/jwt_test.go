package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	secret        = "test-secret"
	refreshSecret = "test-refresh-secret"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("alice", "Customer", "session-1", secret, 15)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "Customer", claims.Role)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Equal(t, "minibank", claims.Issuer)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("alice", "Customer", "session-1", secret, 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiredAccessToken(t *testing.T) {
	token, err := GenerateAccessToken("alice", "Customer", "session-1", secret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, secret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken("alice", "session-1", refreshSecret, 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, refreshSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "session-1", claims.SessionID)

	// Refresh tokens do not validate as access tokens with the wrong secret
	_, err = ValidateAccessToken(token, secret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
