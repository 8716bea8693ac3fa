package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/redbridge-uk/authclient/internal/client/config"
	"github.com/redbridge-uk/authclient/internal/client/credentials"
	"github.com/redbridge-uk/authclient/internal/client/status"
	"github.com/redbridge-uk/authclient/internal/logging"
)

// MethodBearer identifies the pre-issued token strategy.
const MethodBearer = "bearer"

// BearerVariant authenticates with a pre-issued JWT carried in the
// credentials' access token. Login validates the token locally: with a
// signing key it verifies an HS256 signature and the registered claims,
// without one it only parses the claims and checks expiry. No network is
// involved.
//
// Failure mapping: a missing, malformed, or expired token ends in status
// Failed.
type BearerVariant struct {
	VariantDefaults

	signingKey []byte

	mu       sync.Mutex
	username string
	token    string
}

// NewBearerClient builds a Client around a BearerVariant. signingKey may be
// nil to accept tokens whose signature cannot be verified locally.
func NewBearerClient(signingKey []byte, log logging.Logger, settings *config.Config) (*Client, error) {
	return New(&BearerVariant{signingKey: signingKey}, log, settings)
}

func (b *BearerVariant) AuthenticationMethod() string { return MethodBearer }
func (b *BearerVariant) ClientType() string           { return "bearer" }

func (b *BearerVariant) Username() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.username
}

func (b *BearerVariant) AccessToken() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.token
}

// Login validates the token from the current credentials.
func (b *BearerVariant) Login(ctx context.Context, c *Client) error {
	creds := c.Credentials()
	if creds == nil || creds.AccessToken == "" {
		c.setStatus(ctx, status.Failed)
		return fmt.Errorf("%w: bearer login requires an access token", ErrInvalidOperation)
	}

	claims := &jwt.RegisteredClaims{}
	var err error
	if len(b.signingKey) > 0 {
		_, err = jwt.ParseWithClaims(creds.AccessToken, claims,
			func(*jwt.Token) (any, error) { return b.signingKey, nil },
			jwt.WithValidMethods([]string{"HS256"}))
	} else {
		_, _, err = jwt.NewParser().ParseUnverified(creds.AccessToken, claims)
		if err == nil {
			err = jwt.NewValidator(jwt.WithExpirationRequired()).Validate(claims)
		}
	}
	if err != nil {
		c.setStatus(ctx, status.Failed)
		return fmt.Errorf("%w: invalid bearer token: %w", ErrInvalidOperation, err)
	}

	b.mu.Lock()
	b.username = claims.Subject
	b.token = creds.AccessToken
	b.mu.Unlock()

	c.setStatus(ctx, status.Connected)
	return nil
}

// Logout drops the accepted token.
func (b *BearerVariant) Logout(ctx context.Context, c *Client) error {
	b.mu.Lock()
	b.token = ""
	b.username = ""
	b.mu.Unlock()
	return nil
}

// CredentialsChanged forgets the previously accepted token.
func (b *BearerVariant) CredentialsChanged(creds *credentials.UserCredentials) {
	b.mu.Lock()
	b.token = ""
	b.username = ""
	b.mu.Unlock()
}
