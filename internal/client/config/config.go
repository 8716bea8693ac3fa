// Package config handles configuration for the authentication client,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings consumed by concrete client variants.
//
// Fields:
//   - TokenURL: OAuth2 token endpoint of the identity provider.
//   - RevokeURL: optional token revocation endpoint; empty disables revocation.
//   - ClientID: OAuth2 client identifier presented on every exchange.
//   - RequestTimeout: upper bound for a single provider round trip.
//   - StatePath: file the CLI persists saved session state to.
type Config struct {
	TokenURL       string
	RevokeURL      string
	ClientID       string
	RequestTimeout time.Duration
	StatePath      string
}

// LoadDefaults populates c with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.TokenURL = "http://127.0.0.1:8080/oauth/token"
	c.RevokeURL = ""
	c.ClientID = "authclient"
	c.RequestTimeout = 12 * time.Second
	c.StatePath = "session.state"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
