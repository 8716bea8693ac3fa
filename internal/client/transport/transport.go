// Package transport performs the network exchange with the remote identity
// provider on behalf of the authentication client.
//
// The package exposes a small transport-agnostic contract (see Transport)
// and a concrete implementation speaking the OAuth2 resource-owner password
// grant over HTTP (see OAuth2Transport). Common failure conditions are
// exposed as sentinel errors that callers can match with errors.Is:
// ErrUnauthorized, ErrUnavailable.
package transport

import "context"

// Transport is the network collaborator contract required by credentialed
// client variants. Implementations must honor context cancellation and
// never block the caller without one.
type Transport interface {
	// Login exchanges the username and secret for an access token.
	Login(ctx context.Context, username string, secret []byte) (string, error)

	// Logout revokes the given access token at the provider, when the
	// provider supports revocation.
	Logout(ctx context.Context, accessToken string) error

	// Close releases resources held by the transport.
	Close() error
}
