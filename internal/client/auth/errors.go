package auth

import "errors"

var (
	// ErrInvalidArgument means a required parameter was absent.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidOperation means the operation is not supported in the
	// client's current credential or status state.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrTransport wraps failures of the variant's network procedure.
	ErrTransport = errors.New("transport failure")
)
