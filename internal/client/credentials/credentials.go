// Package credentials defines the user credential value object and the
// in-memory store holding the current credentials of a client.
package credentials

import "encoding/json"

// UserCredentials is an opaque value holding the material a client logs in
// with: a username, an optional secret, and an optional pre-issued access
// token. Instances are replaced wholesale, never mutated in place.
type UserCredentials struct {
	Username    string `json:"username"`
	Secret      []byte `json:"secret,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
}

// New returns freshly constructed empty credentials. It always succeeds and
// performs no I/O.
func New() *UserCredentials {
	return &UserCredentials{}
}

// IsEmpty reports whether the credentials carry no login material at all.
func (c *UserCredentials) IsEmpty() bool {
	return c.Username == "" && len(c.Secret) == 0 && c.AccessToken == ""
}

// MarshalBinary encodes the credentials as JSON for persisted state
// envelopes.
func (c *UserCredentials) MarshalBinary() ([]byte, error) {
	return json.Marshal(c)
}

// UnmarshalBinary decodes credentials previously encoded with MarshalBinary.
func (c *UserCredentials) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, c)
}
