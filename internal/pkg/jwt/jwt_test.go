package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, accessTTL, refreshTTL time.Duration) *Service {
	svc, err := New(Config{
		AccessSecret:  "access-secret-123",
		RefreshSecret: "refresh-secret-456",
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	})
	require.NoError(t, err)
	return svc
}

func TestNew_MissingSecrets(t *testing.T) {
	_, err := New(Config{AccessSecret: "", RefreshSecret: "x"})
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = New(Config{AccessSecret: "x", RefreshSecret: ""})
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	svc := newTestService(t, time.Hour, 24*time.Hour)

	token, err := svc.GenerateAccessToken(42)
	require.NoError(t, err)

	claims, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestAccessToken_Expired(t *testing.T) {
	svc := newTestService(t, time.Hour, 24*time.Hour)
	svc.accessTTL = -time.Minute

	token, err := svc.GenerateAccessToken(42)
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessToken_Tampered(t *testing.T) {
	svc := newTestService(t, time.Hour, 24*time.Hour)

	token, err := svc.GenerateAccessToken(42)
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(token + "x")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.ParseAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSecrets_AreNotInterchangeable(t *testing.T) {
	svc := newTestService(t, time.Hour, 24*time.Hour)

	refresh, err := svc.GenerateRefreshToken(7)
	require.NoError(t, err)

	// A refresh token must never pass access-token verification.
	_, err = svc.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	claims, err := svc.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestDecodeUserID_IgnoresExpiryAndSignature(t *testing.T) {
	svc := newTestService(t, time.Hour, 24*time.Hour)
	svc.refreshTTL = -time.Minute

	expired, err := svc.GenerateRefreshToken(99)
	require.NoError(t, err)

	_, err = svc.ParseRefreshToken(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)

	id, err := svc.DecodeUserID(expired)
	require.NoError(t, err)
	assert.Equal(t, int64(99), id)
}

func TestGenerate_TokensAreUnique(t *testing.T) {
	svc := newTestService(t, time.Hour, 24*time.Hour)

	a, err := svc.GenerateRefreshToken(1)
	require.NoError(t, err)
	b, err := svc.GenerateRefreshToken(1)
	require.NoError(t, err)

	// Same user, same second — the jti must still keep them distinct.
	assert.NotEqual(t, a, b)
}

func TestDecodeUserID_Garbage(t *testing.T) {
	svc := newTestService(t, time.Hour, 24*time.Hour)

	_, err := svc.DecodeUserID("garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
