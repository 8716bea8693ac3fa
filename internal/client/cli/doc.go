// Package cli provides the interactive command-line authentication client.
//
// It wires configuration, the OAuth2 transport, and a password-based
// auth.Client into a small command loop: login, logout, status, save,
// load, exit. Status transitions are printed as they are observed on the
// client's status feed.
//
// The loop is started via App.Run(ctx), which blocks until the user exits.
package cli
