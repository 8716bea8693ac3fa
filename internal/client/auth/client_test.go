package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redbridge-uk/authclient/internal/client/config"
	"github.com/redbridge-uk/authclient/internal/client/credentials"
	"github.com/redbridge-uk/authclient/internal/client/status"
	"github.com/redbridge-uk/authclient/internal/logging"
)

// ---- helpers ----

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

func testSettings() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

// collectStatuses reads exactly n values from the subscription or fails.
func collectStatuses(t *testing.T, sub *status.Subscription, n int) []status.Status {
	t.Helper()
	got := make([]status.Status, 0, n)
	for len(got) < n {
		select {
		case v, ok := <-sub.Updates():
			require.True(t, ok, "status feed closed after %d of %d values", len(got), n)
			got = append(got, v)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for status %d of %d, got %v", len(got)+1, n, got)
		}
	}
	return got
}

// fakeVariant lets tests script the strategy-specific behavior.
type fakeVariant struct {
	VariantDefaults

	LoginErr    error
	LoginStatus status.Status
	LogoutErr   error

	LoginCalls  int
	LogoutCalls int
	LastCreds   *credentials.UserCredentials
}

func (f *fakeVariant) AuthenticationMethod() string { return "fake" }
func (f *fakeVariant) ClientType() string           { return "fake" }
func (f *fakeVariant) Username() string             { return "" }
func (f *fakeVariant) AccessToken() string          { return "" }

func (f *fakeVariant) Login(ctx context.Context, c *Client) error {
	f.LoginCalls++
	c.setStatus(ctx, f.LoginStatus)
	return f.LoginErr
}

func (f *fakeVariant) Logout(ctx context.Context, c *Client) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeVariant) CredentialsChanged(creds *credentials.UserCredentials) {
	f.LastCreds = creds
}

// ---- construction ----

func TestNew_RequiresAllDependencies(t *testing.T) {
	tests := []struct {
		name     string
		variant  Variant
		logger   logging.Logger
		settings *config.Config
	}{
		{"nil variant", nil, testLogger(), testSettings()},
		{"nil logger", &fakeVariant{}, nil, testSettings()},
		{"nil settings", &fakeVariant{}, testLogger(), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(tc.variant, tc.logger, tc.settings)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestNew_StartsDisconnected(t *testing.T) {
	c, err := New(&fakeVariant{}, testLogger(), testSettings())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, status.Disconnected, c.Status())
	assert.False(t, c.IsConnected())
}

// ---- credentials ----

func TestSetCredentials_NilFailsAndStatusUnchanged(t *testing.T) {
	c, err := New(&fakeVariant{}, testLogger(), testSettings())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	err = c.SetCredentials(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, status.Disconnected, c.Status())
	assert.Nil(t, c.Credentials())
}

func TestSetCredentials_StoresValueAndNotifiesVariant(t *testing.T) {
	v := &fakeVariant{}
	c, err := New(v, testLogger(), testSettings())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	creds := &credentials.UserCredentials{Username: "alice", Secret: []byte("pw")}
	require.NoError(t, c.SetCredentials(creds))

	assert.Same(t, creds, c.Credentials())
	assert.Same(t, creds, v.LastCreds)
	assert.Equal(t, status.Disconnected, c.Status(), "SetCredentials must not change status")
}

// ---- login / logout ----

func TestBeginLogin_VariantDecidesTerminalStatus(t *testing.T) {
	v := &fakeVariant{LoginStatus: status.Failed, LoginErr: errors.New("boom")}
	c, err := New(v, testLogger(), testSettings())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	sub := c.Subscribe()
	err = c.BeginLogin(context.Background())
	assert.EqualError(t, err, "boom")

	got := collectStatuses(t, sub, 3)
	assert.Equal(t, []status.Status{status.Disconnected, status.Connecting, status.Failed}, got)
	assert.Equal(t, 1, v.LoginCalls)
}

func TestLogout_AlwaysEndsDisconnected(t *testing.T) {
	tests := []struct {
		name      string
		logoutErr error
	}{
		{"variant logout succeeds", nil},
		{"variant logout fails", errors.New("revoke failed")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := &fakeVariant{LoginStatus: status.Connected, LogoutErr: tc.logoutErr}
			c, err := New(v, testLogger(), testSettings())
			require.NoError(t, err)
			t.Cleanup(func() { _ = c.Close() })

			require.NoError(t, c.BeginLogin(context.Background()))
			require.True(t, c.IsConnected())

			err = c.Logout(context.Background())
			if tc.logoutErr != nil {
				assert.EqualError(t, err, tc.logoutErr.Error())
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, status.Disconnected, c.Status(), "status tracking must survive a failed logout")
			assert.Equal(t, 1, v.LogoutCalls)
		})
	}
}

// ---- save / load ----

func TestLoad_NilStreamFails(t *testing.T) {
	c, err := New(&fakeVariant{}, testLogger(), testSettings())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	creds, err := c.Load(context.Background(), nil)
	assert.Nil(t, creds)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSaveLoad_DefaultVariantRoundTrip(t *testing.T) {
	c, err := New(&fakeVariant{}, testLogger(), testSettings())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	r, err := c.Save(context.Background())
	require.NoError(t, err)
	require.NotNil(t, r)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, data, "default save is an empty container")

	// load(save()) does not error and yields valid empty credentials.
	creds, err := c.Load(context.Background(), r)
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.True(t, creds.IsEmpty())
}

// ---- status feed & lifecycle ----

func TestSubscribe_LateSubscriberGetsReplayOnly(t *testing.T) {
	v := &fakeVariant{LoginStatus: status.Connected}
	c, err := New(v, testLogger(), testSettings())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.BeginLogin(context.Background()))

	// Subscribing after Disconnected and Connecting were published:
	// only the current value is replayed.
	sub := c.Subscribe()
	got := collectStatuses(t, sub, 1)
	assert.Equal(t, []status.Status{status.Connected}, got)
}

func TestClose_IsIdempotentAndCompletesFeed(t *testing.T) {
	c, err := New(&fakeVariant{}, testLogger(), testSettings())
	require.NoError(t, err)

	sub := c.Subscribe()
	got := collectStatuses(t, sub, 1)
	assert.Equal(t, []status.Status{status.Disconnected}, got)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, ok := <-sub.Updates()
	assert.False(t, ok, "expected completed status feed after close")
}
