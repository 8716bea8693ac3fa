package auth

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/redbridge-uk/authclient/internal/client/config"
	"github.com/redbridge-uk/authclient/internal/client/credentials"
	"github.com/redbridge-uk/authclient/internal/client/status"
	"github.com/redbridge-uk/authclient/internal/logging"
)

// Client orchestrates the authentication lifecycle around a concrete
// Variant: it owns the connection status and the current credentials, and
// delegates the strategy-specific work to the variant.
//
// A Client is intended for single logical-session use. The status feed it
// exposes is safe for concurrent subscribe/consume; see package status.
type Client struct {
	variant  Variant
	settings *config.Config
	log      logging.Logger
	status   *status.Broadcaster
	creds    *credentials.Store

	mu     sync.Mutex
	closed bool
}

// New constructs a Client around the given variant. The logger and settings
// are borrowed, not owned. Construction fails with ErrInvalidArgument when
// any dependency is absent; nothing is created in that case.
func New(variant Variant, log logging.Logger, settings *config.Config) (*Client, error) {
	if variant == nil {
		return nil, fmt.Errorf("%w: variant must not be nil", ErrInvalidArgument)
	}
	if log == nil {
		return nil, fmt.Errorf("%w: logger must not be nil", ErrInvalidArgument)
	}
	if settings == nil {
		return nil, fmt.Errorf("%w: settings must not be nil", ErrInvalidArgument)
	}

	return &Client{
		variant:  variant,
		settings: settings,
		log:      log.With("client_id", uuid.NewString(), "client_type", variant.ClientType()),
		status:   status.NewBroadcaster(status.Disconnected),
		creds:    credentials.NewStore(),
	}, nil
}

// SetCredentials stores creds wholesale as the client's current credentials
// and notifies the variant. It fails with ErrInvalidArgument when creds is
// nil and never changes the connection status by itself.
func (c *Client) SetCredentials(creds *credentials.UserCredentials) error {
	if creds == nil {
		return fmt.Errorf("%w: credentials must not be nil", ErrInvalidArgument)
	}

	c.creds.Replace(creds)
	c.variant.CredentialsChanged(creds)
	return nil
}

// Credentials returns the current credentials, or nil when none were set.
func (c *Client) Credentials() *credentials.UserCredentials {
	return c.creds.Current()
}

// BeginLogin transitions the client to Connecting and invokes the variant's
// login procedure. The variant, not this method, sets the terminal status:
// Connected on success, Disconnected or Failed otherwise. The returned
// error is the variant's result; the core never assumes success.
func (c *Client) BeginLogin(ctx context.Context) error {
	c.log.Info(ctx, "login requested", "method", c.variant.AuthenticationMethod())
	c.setStatus(ctx, status.Connecting)
	return c.variant.Login(ctx, c)
}

// Logout invokes the variant's logout procedure and then unconditionally
// transitions the client to Disconnected, whether or not the procedure
// succeeded. A failure is still surfaced to the caller.
func (c *Client) Logout(ctx context.Context) error {
	c.log.Info(ctx, "logout requested")
	err := c.variant.Logout(ctx, c)
	c.setStatus(ctx, status.Disconnected)
	return err
}

// Save returns a serialized representation of the variant's session state,
// sufficient to restore credentials later via Load. An empty stream means
// there was nothing to save; that is not an error.
func (c *Client) Save(ctx context.Context) (io.Reader, error) {
	c.log.Info(ctx, "saving session state")
	return c.variant.Save(ctx, c)
}

// Load reconstructs credentials from a stream previously produced by Save.
// It fails with ErrInvalidArgument when r is nil, before any state changes.
// An empty stream yields valid empty credentials.
func (c *Client) Load(ctx context.Context, r io.Reader) (*credentials.UserCredentials, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: stream must not be nil", ErrInvalidArgument)
	}

	c.log.Info(ctx, "loading session state")
	return c.variant.Load(ctx, c, r)
}

// IsConnected reports whether the current status is Connected.
func (c *Client) IsConnected() bool {
	return c.status.Current() == status.Connected
}

// Status returns the current connection status.
func (c *Client) Status() status.Status {
	return c.status.Current()
}

// Subscribe registers an observer on the status feed. The observer
// immediately receives the current status, then every later transition in
// order. See status.Broadcaster.
func (c *Client) Subscribe() *status.Subscription {
	return c.status.Subscribe()
}

// AuthenticationMethod reports the variant's strategy identifier.
func (c *Client) AuthenticationMethod() string { return c.variant.AuthenticationMethod() }

// ClientType reports the variant's concrete implementation identifier.
func (c *Client) ClientType() string { return c.variant.ClientType() }

// Username reports the authenticated user, or "" when unknown.
func (c *Client) Username() string { return c.variant.Username() }

// AccessToken reports the current access token, or "" when absent.
func (c *Client) AccessToken() string { return c.variant.AccessToken() }

// Close releases the status feed's subscriber resources. Closing an
// already-closed client is a no-op.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.status.Close()
	return nil
}

// setStatus is the single mutation path for the connection status. The new
// value is logged at debug level before subscribers are notified.
func (c *Client) setStatus(ctx context.Context, s status.Status) {
	c.log.Debug(ctx, "status transition", "status", s.String())
	c.status.Publish(s)
}
