package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/grantflow-go/apperror"
	"github.com/user/grantflow-go/config"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:       "test-secret",
		Algorithm:       "HS256",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	svc := NewTokenService(testAuthConfig())
	id := uuid.New()

	token, err := svc.IssueAccessToken("alice", id)
	require.NoError(t, err)

	identity, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, id, identity.ID)
}

func TestVerifyAroundExpiry(t *testing.T) {
	// The clock is a variable so the test can walk the token across its
	// expiry without sleeping.
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService(testAuthConfig()).WithClock(func() time.Time { return now })

	token, err := svc.IssueAccessToken("alice", uuid.New())
	require.NoError(t, err)

	// One second before expiry: still valid.
	now = now.Add(30*time.Minute - time.Second)
	_, err = svc.VerifyAccessToken(token)
	assert.NoError(t, err)

	// One second past expiry: rejected as unauthenticated.
	now = now.Add(2 * time.Second)
	_, err = svc.VerifyAccessToken(token)
	require.Error(t, err)
	assert.True(t, apperror.IsAuthError(err))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	svc := NewTokenService(testAuthConfig())
	token, err := svc.IssueAccessToken("alice", uuid.New())
	require.NoError(t, err)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "a-different-secret"
	other := NewTokenService(otherCfg)

	_, err = other.VerifyAccessToken(token)
	require.Error(t, err)
	assert.True(t, apperror.IsAuthError(err))
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	svc := NewTokenService(testAuthConfig())

	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		_, err := svc.VerifyAccessToken(tok)
		require.Error(t, err, "token %q", tok)
		assert.True(t, apperror.IsAuthError(err))
	}
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	svc := NewTokenService(testAuthConfig())
	id := uuid.New()

	refresh, err := svc.IssueRefreshToken("alice", id)
	require.NoError(t, err)

	// A refresh token must not pass as an access token, and vice versa.
	_, err = svc.VerifyAccessToken(refresh)
	assert.Error(t, err)

	access, err := svc.IssueAccessToken("alice", id)
	require.NoError(t, err)
	_, err = svc.VerifyRefreshToken(access)
	assert.Error(t, err)
}

func TestRefreshTokenOutlivesAccessToken(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService(testAuthConfig()).WithClock(func() time.Time { return now })
	id := uuid.New()

	access, err := svc.IssueAccessToken("alice", id)
	require.NoError(t, err)
	refresh, err := svc.IssueRefreshToken("alice", id)
	require.NoError(t, err)

	// An hour later the access token is gone but the refresh token works.
	now = now.Add(time.Hour)
	_, err = svc.VerifyAccessToken(access)
	assert.Error(t, err)
	identity, err := svc.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, id, identity.ID)
}
