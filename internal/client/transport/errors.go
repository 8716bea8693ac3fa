package transport

import "errors"

var (
	// ErrUnavailable means the provider could not be reached.
	ErrUnavailable = errors.New("identity provider unavailable")
	// ErrUnauthorized means the provider rejected the presented credentials.
	ErrUnauthorized = errors.New("unauthorized")
)
