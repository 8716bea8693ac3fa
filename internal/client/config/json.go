package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/redbridge-uk/authclient/internal/flagx"
	"github.com/redbridge-uk/authclient/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the timeout can be given either as a string like "12s"
// or as integer nanoseconds. Parsed values are copied into the runtime
// Config.
type JsonConfig struct {
	TokenURL       string         `json:"token_url"`
	RevokeURL      string         `json:"revoke_url"`
	ClientID       string         `json:"client_id"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StatePath      string         `json:"state_path"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// is resolved from the -c/-config flags. When no path is given the function
// returns without touching cfg. Read or unmarshal errors panic; the loader
// runs before anything else at startup, so failing loudly is intended.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.TokenURL = jc.TokenURL
	cfg.RevokeURL = jc.RevokeURL
	cfg.ClientID = jc.ClientID
	cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	cfg.StatePath = jc.StatePath
}
