package utils

import (
	"testing"
	"time"

	"alertwatch/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtTestConfig() config.Config {
	return config.Config{
		JWTSecret:       "unit-test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

func TestGenerateTokenPair(t *testing.T) {
	cfg := jwtTestConfig()

	pair, err := GenerateTokenPair(42, cfg)
	require.NoError(t, err)

	access, err := ParseToken(pair.Access, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint(42), access.UserID)
	assert.Equal(t, TokenTypeAccess, access.TokenType)

	refresh, err := ParseToken(pair.Refresh, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint(42), refresh.UserID)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
	assert.NotEmpty(t, refresh.ID, "refresh token carries a jti for revocation")
}

func TestParseTokenWrongSecret(t *testing.T) {
	pair, err := GenerateTokenPair(1, jwtTestConfig())
	require.NoError(t, err)

	other := jwtTestConfig()
	other.JWTSecret = "a-different-secret"
	_, err = ParseToken(pair.Access, other)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	cfg := jwtTestConfig()
	cfg.AccessTokenTTL = -time.Minute

	pair, err := GenerateTokenPair(1, cfg)
	require.NoError(t, err)

	_, err = ParseToken(pair.Access, cfg)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", jwtTestConfig())
	assert.Error(t, err)
}
