package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/redbridge-uk/authclient/internal/client/config"
	"github.com/redbridge-uk/authclient/internal/client/credentials"
	"github.com/redbridge-uk/authclient/internal/client/status"
	"github.com/redbridge-uk/authclient/internal/client/transport"
	"github.com/redbridge-uk/authclient/internal/common"
	"github.com/redbridge-uk/authclient/internal/cryptox"
	"github.com/redbridge-uk/authclient/internal/logging"
)

// MethodPassword identifies the username/secret strategy.
const MethodPassword = "password"

// PasswordVariant authenticates with a username and secret through a
// transport.Transport and caches the access token issued by the provider.
//
// Failure mapping: a transport failure during login ends in status Failed;
// a login attempted without credentials ends back in Disconnected, since
// no exchange took place.
type PasswordVariant struct {
	VariantDefaults

	tr transport.Transport

	mu       sync.Mutex
	username string
	token    string
}

// passwordState is the serialized session state envelope: the credentials
// payload is sealed with a key derived from the user's secret, so the state
// is useless without it.
type passwordState struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// NewPasswordClient builds a Client around a PasswordVariant using the
// given transport.
func NewPasswordClient(tr transport.Transport, log logging.Logger, settings *config.Config) (*Client, error) {
	if tr == nil {
		return nil, fmt.Errorf("%w: transport must not be nil", ErrInvalidArgument)
	}
	return New(&PasswordVariant{tr: tr}, log, settings)
}

func (p *PasswordVariant) AuthenticationMethod() string { return MethodPassword }
func (p *PasswordVariant) ClientType() string           { return "password" }

func (p *PasswordVariant) Username() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.username
}

func (p *PasswordVariant) AccessToken() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

// Login exchanges the current credentials for an access token.
func (p *PasswordVariant) Login(ctx context.Context, c *Client) error {
	creds := c.Credentials()
	if creds == nil || creds.Username == "" || len(creds.Secret) == 0 {
		c.setStatus(ctx, status.Disconnected)
		return fmt.Errorf("%w: password login requires credentials", ErrInvalidOperation)
	}

	token, err := p.tr.Login(ctx, creds.Username, creds.Secret)
	if err != nil {
		c.setStatus(ctx, status.Failed)
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	p.mu.Lock()
	p.username = creds.Username
	p.token = token
	p.mu.Unlock()

	c.setStatus(ctx, status.Connected)
	return nil
}

// Logout revokes the cached token at the provider. The token is dropped
// locally even when revocation fails.
func (p *PasswordVariant) Logout(ctx context.Context, c *Client) error {
	p.mu.Lock()
	token := p.token
	p.token = ""
	p.mu.Unlock()

	if token == "" {
		return nil
	}
	if err := p.tr.Logout(ctx, token); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return nil
}

// Save seals {username, access token} under a key derived from the current
// secret. With no credentials or no token there is nothing to save and an
// empty stream is returned.
func (p *PasswordVariant) Save(ctx context.Context, c *Client) (io.Reader, error) {
	creds := c.Credentials()

	p.mu.Lock()
	token := p.token
	p.mu.Unlock()

	if creds == nil || len(creds.Secret) == 0 || token == "" {
		return bytes.NewReader(nil), nil
	}

	salt := common.GenerateRandByteArray(16)
	key := cryptox.DeriveKey(creds.Secret, salt)

	payload := &credentials.UserCredentials{Username: creds.Username, AccessToken: token}
	plaintext, err := payload.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	ciphertext, nonce, err := cryptox.Seal(plaintext, key)
	if err != nil {
		return nil, fmt.Errorf("seal state: %w", err)
	}

	data, err := json.Marshal(passwordState{Salt: salt, Nonce: nonce, Ciphertext: ciphertext})
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Load restores {username, access token} from a stream produced by Save.
// The current secret is needed to derive the decryption key. An empty
// stream yields fresh empty credentials without error.
func (p *PasswordVariant) Load(ctx context.Context, c *Client, r io.Reader) (*credentials.UserCredentials, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	if len(data) == 0 {
		return credentials.New(), nil
	}

	creds := c.Credentials()
	if creds == nil || len(creds.Secret) == 0 {
		return nil, fmt.Errorf("%w: loading state requires credentials for the decryption key", ErrInvalidOperation)
	}

	var env passwordState
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}

	key := cryptox.DeriveKey(creds.Secret, env.Salt)
	plaintext, err := cryptox.Open(env.Ciphertext, env.Nonce, key)
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}
	restored := credentials.New()
	if err := restored.UnmarshalBinary(plaintext); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}

	p.mu.Lock()
	p.username = restored.Username
	p.token = restored.AccessToken
	p.mu.Unlock()

	return restored, nil
}

// CredentialsChanged drops the cached token: it was issued for the previous
// credentials.
func (p *PasswordVariant) CredentialsChanged(creds *credentials.UserCredentials) {
	p.mu.Lock()
	p.token = ""
	p.mu.Unlock()
}
