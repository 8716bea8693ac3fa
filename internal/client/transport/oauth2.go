package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// OAuth2Transport authenticates against an OAuth2 token endpoint using the
// resource-owner password grant and optionally revokes tokens (RFC 7009).
type OAuth2Transport struct {
	cfg        *oauth2.Config
	revokeURL  string
	httpClient *http.Client
}

// NewOAuth2Transport builds a transport for the given token endpoint.
// revokeURL may be empty, in which case Logout is a local no-op.
func NewOAuth2Transport(tokenURL, revokeURL, clientID string, timeout time.Duration) *OAuth2Transport {
	return &OAuth2Transport{
		cfg: &oauth2.Config{
			ClientID: clientID,
			Endpoint: oauth2.Endpoint{TokenURL: tokenURL},
		},
		revokeURL:  revokeURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (t *OAuth2Transport) Login(ctx context.Context, username string, secret []byte) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, t.httpClient)

	tok, err := t.cfg.PasswordCredentialsToken(ctx, username, string(secret))
	if err != nil {
		return "", t.mapError(err)
	}
	return tok.AccessToken, nil
}

func (t *OAuth2Transport) Logout(ctx context.Context, accessToken string) error {
	if t.revokeURL == "" {
		return nil
	}

	form := url.Values{"token": {accessToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return t.mapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("revoke failed: %s", resp.Status)
	}
	return nil
}

func (t *OAuth2Transport) Close() error {
	t.httpClient.CloseIdleConnections()
	return nil
}

// mapError translates oauth2 and network failures into sentinel errors.
// Provider responses rejecting the grant become ErrUnauthorized; anything
// that prevented reaching the provider becomes ErrUnavailable.
func (t *OAuth2Transport) mapError(err error) error {
	if err == nil {
		return nil
	}

	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		switch rerr.Response.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			// OAuth2 servers signal a rejected password grant with
			// invalid_grant on a 400.
			return ErrUnauthorized
		}
		return fmt.Errorf("token endpoint: %w", err)
	}

	var uerr *url.Error
	if errors.As(err, &uerr) || errors.Is(err, context.DeadlineExceeded) {
		return ErrUnavailable
	}

	return fmt.Errorf("transport error: %w", err)
}
