package config

import (
	"flag"
	"os"
	"time"

	"github.com/redbridge-uk/authclient/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   token endpoint URL of the identity provider
//	-r string   token revocation endpoint URL
//	-id string  OAuth2 client identifier
//	-t int      request timeout in seconds
//	-s string   path of the persisted session state file
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-r", "-id", "-t", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.TokenURL, "u", cfg.TokenURL, "token endpoint URL")
	fs.StringVar(&cfg.RevokeURL, "r", cfg.RevokeURL, "token revocation endpoint URL")
	fs.StringVar(&cfg.ClientID, "id", cfg.ClientID, "OAuth2 client identifier")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StatePath, "s", cfg.StatePath, "persisted session state file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
