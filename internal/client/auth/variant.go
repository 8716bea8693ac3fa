package auth

import (
	"bytes"
	"context"
	"io"

	"github.com/redbridge-uk/authclient/internal/client/credentials"
)

// Variant is the capability set a concrete authentication strategy supplies
// to the Client orchestrator.
//
// Login and Logout perform the strategy-specific exchange; they receive the
// owning Client so they can read the current credentials and drive the
// status transition primitive. Login must move the status out of Connecting
// on every code path, success or failure. Save and Load (de)serialize the
// strategy's session state. CredentialsChanged is invoked after every
// successful SetCredentials so a strategy can react, e.g. by dropping a
// cached token.
//
// The identity accessors are pure and side-effect free.
type Variant interface {
	// AuthenticationMethod identifies the strategy, e.g. "anonymous",
	// "password", "bearer".
	AuthenticationMethod() string
	// ClientType identifies the concrete implementation.
	ClientType() string
	// Username returns the authenticated user, or "" when unknown.
	Username() string
	// AccessToken returns the current access token, or "" when absent.
	AccessToken() string

	Login(ctx context.Context, c *Client) error
	Logout(ctx context.Context, c *Client) error
	Save(ctx context.Context, c *Client) (io.Reader, error)
	Load(ctx context.Context, c *Client, r io.Reader) (*credentials.UserCredentials, error)
	CredentialsChanged(creds *credentials.UserCredentials)
}

// VariantDefaults supplies the default hook behavior for strategies that
// have no session state of their own. Embed it and override as needed.
type VariantDefaults struct{}

// Logout does nothing; the orchestrator still transitions the client to
// Disconnected afterwards.
func (VariantDefaults) Logout(ctx context.Context, c *Client) error {
	return nil
}

// Save returns an empty stream. Having nothing to save is not an error.
func (VariantDefaults) Save(ctx context.Context, c *Client) (io.Reader, error) {
	return bytes.NewReader(nil), nil
}

// Load returns freshly constructed empty credentials without reading the
// stream. A strategy with no persisted state must not fail merely because
// the stream is empty.
func (VariantDefaults) Load(ctx context.Context, c *Client, r io.Reader) (*credentials.UserCredentials, error) {
	return credentials.New(), nil
}

// CredentialsChanged does nothing.
func (VariantDefaults) CredentialsChanged(creds *credentials.UserCredentials) {}
