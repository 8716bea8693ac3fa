package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redbridge-uk/authclient/internal/client/credentials"
	"github.com/redbridge-uk/authclient/internal/client/status"
)

var bearerTestKey = []byte("test-signing-key")

func signedToken(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	s, err := tok.SignedString(bearerTestKey)
	require.NoError(t, err)
	return s
}

func newBearerClient(t *testing.T, signingKey []byte) *Client {
	t.Helper()
	c, err := NewBearerClient(signingKey, testLogger(), testSettings())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestBearer_LoginValidToken(t *testing.T) {
	c := newBearerClient(t, bearerTestKey)

	token := signedToken(t, "alice", time.Now().Add(time.Hour))
	require.NoError(t, c.SetCredentials(&credentials.UserCredentials{AccessToken: token}))

	sub := c.Subscribe()
	require.NoError(t, c.BeginLogin(context.Background()))

	got := collectStatuses(t, sub, 3)
	assert.Equal(t, []status.Status{status.Disconnected, status.Connecting, status.Connected}, got)
	assert.Equal(t, "alice", c.Username())
	assert.Equal(t, token, c.AccessToken())
	assert.Equal(t, MethodBearer, c.AuthenticationMethod())
}

func TestBearer_LoginExpiredToken(t *testing.T) {
	c := newBearerClient(t, bearerTestKey)

	token := signedToken(t, "alice", time.Now().Add(-time.Hour))
	require.NoError(t, c.SetCredentials(&credentials.UserCredentials{AccessToken: token}))

	err := c.BeginLogin(context.Background())
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, status.Failed, c.Status())
	assert.Empty(t, c.Username())
}

func TestBearer_LoginWrongSignature(t *testing.T) {
	c := newBearerClient(t, []byte("a-different-key"))

	token := signedToken(t, "alice", time.Now().Add(time.Hour))
	require.NoError(t, c.SetCredentials(&credentials.UserCredentials{AccessToken: token}))

	err := c.BeginLogin(context.Background())
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, status.Failed, c.Status())
}

func TestBearer_LoginWithoutToken(t *testing.T) {
	c := newBearerClient(t, bearerTestKey)

	err := c.BeginLogin(context.Background())
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, status.Failed, c.Status())
}

func TestBearer_UnverifiedModeChecksExpiry(t *testing.T) {
	c := newBearerClient(t, nil)

	t.Run("valid token accepted", func(t *testing.T) {
		token := signedToken(t, "alice", time.Now().Add(time.Hour))
		require.NoError(t, c.SetCredentials(&credentials.UserCredentials{AccessToken: token}))

		require.NoError(t, c.BeginLogin(context.Background()))
		assert.Equal(t, "alice", c.Username())
	})

	t.Run("expired token rejected", func(t *testing.T) {
		token := signedToken(t, "alice", time.Now().Add(-time.Hour))
		require.NoError(t, c.SetCredentials(&credentials.UserCredentials{AccessToken: token}))

		err := c.BeginLogin(context.Background())
		assert.ErrorIs(t, err, ErrInvalidOperation)
		assert.Equal(t, status.Failed, c.Status())
	})
}

func TestBearer_LogoutDropsToken(t *testing.T) {
	c := newBearerClient(t, bearerTestKey)

	token := signedToken(t, "alice", time.Now().Add(time.Hour))
	require.NoError(t, c.SetCredentials(&credentials.UserCredentials{AccessToken: token}))
	require.NoError(t, c.BeginLogin(context.Background()))

	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, status.Disconnected, c.Status())
	assert.Empty(t, c.AccessToken())
	assert.Empty(t, c.Username())
}

func TestBearer_CredentialsChangedForgetsToken(t *testing.T) {
	c := newBearerClient(t, bearerTestKey)

	token := signedToken(t, "alice", time.Now().Add(time.Hour))
	require.NoError(t, c.SetCredentials(&credentials.UserCredentials{AccessToken: token}))
	require.NoError(t, c.BeginLogin(context.Background()))
	require.Equal(t, token, c.AccessToken())

	other := signedToken(t, "bob", time.Now().Add(time.Hour))
	require.NoError(t, c.SetCredentials(&credentials.UserCredentials{AccessToken: other}))
	assert.Empty(t, c.AccessToken())
	assert.Empty(t, c.Username())
}
