package auth

import (
	"context"

	"github.com/redbridge-uk/authclient/internal/client/config"
	"github.com/redbridge-uk/authclient/internal/client/status"
	"github.com/redbridge-uk/authclient/internal/logging"
)

// MethodAnonymous identifies the credential-less strategy.
const MethodAnonymous = "anonymous"

// AnonymousVariant is the fallback strategy used when no real identity is
// configured. It needs no credentials and no settings beyond the minimum
// construction contract; login connects immediately and cannot fail.
type AnonymousVariant struct {
	VariantDefaults
}

// NewAnonymousClient builds a Client around an AnonymousVariant.
func NewAnonymousClient(log logging.Logger, settings *config.Config) (*Client, error) {
	return New(&AnonymousVariant{}, log, settings)
}

func (a *AnonymousVariant) AuthenticationMethod() string { return MethodAnonymous }
func (a *AnonymousVariant) ClientType() string           { return "anonymous" }
func (a *AnonymousVariant) Username() string             { return "" }
func (a *AnonymousVariant) AccessToken() string          { return "" }

// Login transitions straight to Connected.
func (a *AnonymousVariant) Login(ctx context.Context, c *Client) error {
	c.setStatus(ctx, status.Connected)
	return nil
}
