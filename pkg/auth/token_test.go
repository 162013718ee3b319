package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenService("short", time.Hour)
	require.Error(t, err)
}

func TestTokenService_GenerateValidateRoundtrip(t *testing.T) {
	ts, err := NewTokenService("test-secret-at-least-16-bytes", time.Hour)
	require.NoError(t, err)

	token, err := ts.Generate(Identity{UserID: "u1", Email: "alice@example.com", Role: "member"})
	require.NoError(t, err)

	got, err := ts.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "member", got.Role)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	ts1, err := NewTokenService("first-secret-16-bytes-min", time.Hour)
	require.NoError(t, err)
	ts2, err := NewTokenService("other-secret-16-bytes-min", time.Hour)
	require.NoError(t, err)

	token, err := ts1.Generate(Identity{UserID: "u1"})
	require.NoError(t, err)

	_, err = ts2.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	ts, err := NewTokenService("test-secret-at-least-16-bytes", -time.Minute)
	require.NoError(t, err)

	token, err := ts.Generate(Identity{UserID: "u1"})
	require.NoError(t, err)

	_, err = ts.Validate(token)
	assert.ErrorContains(t, err, "expired")
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	ts, err := NewTokenService("test-secret-at-least-16-bytes", time.Hour)
	require.NoError(t, err)

	_, err = ts.Validate("not.a.token")
	assert.Error(t, err)
}
