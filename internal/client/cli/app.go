package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/redbridge-uk/authclient/internal/client/auth"
	"github.com/redbridge-uk/authclient/internal/client/config"
	"github.com/redbridge-uk/authclient/internal/client/credentials"
	"github.com/redbridge-uk/authclient/internal/client/transport"
	"github.com/redbridge-uk/authclient/internal/common"
	"github.com/redbridge-uk/authclient/internal/logging"
)

// App is the interactive authentication client. It wires configuration,
// the OAuth2 transport, and a password-based auth.Client, and drives them
// from a small command loop.
type App struct {
	config    *config.Config
	client    *auth.Client
	transport transport.Transport
	reader    *bufio.Reader
	out       io.Writer
}

// NewApp builds the App from configuration: an OAuth2 transport against the
// configured identity provider and a password client on top of it.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	tr := transport.NewOAuth2Transport(cfg.TokenURL, cfg.RevokeURL, cfg.ClientID, cfg.RequestTimeout)

	client, err := auth.NewPasswordClient(tr, log, cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		config:    cfg,
		client:    client,
		transport: tr,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

// Run processes commands until "exit" or EOF, printing every status
// transition as it happens. On return the client and transport are closed
// and any secret still held in memory is wiped.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if creds := a.client.Credentials(); creds != nil {
			common.WipeByteArray(creds.Secret)
		}
	}()
	if a.transport != nil {
		defer a.transport.Close()
	}
	defer a.client.Close()

	sub := a.client.Subscribe()
	defer sub.Unsubscribe()
	go func() {
		for s := range sub.Updates() {
			fmt.Fprintf(a.out, "[status] %s\n", s)
		}
	}()

	for {
		cmd, err := GetSimpleText(a.reader, "Enter command (login, logout, status, save, load, exit)", a.out)
		if err != nil {
			return
		}
		switch cmd {
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "status":
			fmt.Fprintln(a.out, a.client.Status())
		case "save":
			a.Save(ctx)
		case "load":
			a.Load(ctx)
		case "exit":
			return
		case "":
		default:
			fmt.Fprintf(a.out, "unknown command: %s\n", cmd)
		}
	}
}

// Login prompts for credentials when the client's strategy needs them and
// starts the login procedure.
func (a *App) Login(ctx context.Context) {
	if a.client.AuthenticationMethod() != auth.MethodAnonymous {
		username, err := GetSimpleText(a.reader, "Enter username", a.out)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
		password, err := GetPassword(a.out)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}

		creds := &credentials.UserCredentials{Username: username, Secret: password}
		if err := a.client.SetCredentials(creds); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
	}

	if err := a.client.BeginLogin(ctx); err != nil {
		fmt.Fprintf(a.out, "login failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "login successful")
}

// Logout ends the session. The client is disconnected afterwards even when
// revocation at the provider failed.
func (a *App) Logout(ctx context.Context) {
	if err := a.client.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "logout reported an error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "logged out")
}

// Save writes the client's serialized session state to the configured
// state file.
func (a *App) Save(ctx context.Context) {
	r, err := a.client.Save(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "save failed: %v\n", err)
		return
	}
	data, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintf(a.out, "save failed: %v\n", err)
		return
	}
	if err := os.WriteFile(a.config.StatePath, data, 0o600); err != nil {
		fmt.Fprintf(a.out, "save failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "state saved to %s\n", a.config.StatePath)
}

// Load restores session state from the configured state file.
func (a *App) Load(ctx context.Context) {
	data, err := os.ReadFile(a.config.StatePath)
	if err != nil {
		fmt.Fprintf(a.out, "load failed: %v\n", err)
		return
	}
	restored, err := a.client.Load(ctx, bytes.NewReader(data))
	if err != nil {
		fmt.Fprintf(a.out, "load failed: %v\n", err)
		return
	}
	if restored.IsEmpty() {
		fmt.Fprintln(a.out, "no saved state")
		return
	}
	fmt.Fprintf(a.out, "state loaded for %s\n", restored.Username)
}
