package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager("test-secret", "digital_diary", 15*time.Minute, 24*time.Hour)
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	access, err := m.GenerateAccessToken(42)
	require.NoError(t, err)

	identity, err := m.ValidateToken(access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.UserID)
	assert.WithinDuration(t, time.Now(), identity.IssuedAt, 5*time.Second)
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	m := newTestManager()

	refresh, err := m.GenerateRefreshToken(42)
	require.NoError(t, err)

	_, err = m.ValidateToken(refresh, TokenTypeAccess)
	assert.Error(t, err)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	m := newTestManager()
	other := NewTokenManager("other-secret", "digital_diary", 15*time.Minute, 24*time.Hour)

	access, err := m.GenerateAccessToken(42)
	require.NoError(t, err)

	_, err = other.ValidateToken(access, TokenTypeAccess)
	assert.Error(t, err)
}

func TestTokenWrongIssuerRejected(t *testing.T) {
	m := newTestManager()
	other := NewTokenManager("test-secret", "someone_else", 15*time.Minute, 24*time.Hour)

	access, err := m.GenerateAccessToken(42)
	require.NoError(t, err)

	_, err = other.ValidateToken(access, TokenTypeAccess)
	assert.Error(t, err)
}

func TestTokenEmptyRejected(t *testing.T) {
	_, err := newTestManager().ValidateToken("", TokenTypeAccess)
	assert.Error(t, err)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
