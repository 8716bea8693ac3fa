// Package status tracks the client's connection status and fans out status
// changes to any number of subscribers with replay-latest semantics.
package status

// Status describes the client's current relationship to the remote
// identity provider.
type Status int

const (
	// Disconnected means no session is established.
	Disconnected Status = iota
	// Connecting means a login attempt is in flight.
	Connecting
	// Connected means a session is established.
	Connected
	// Failed means the last login attempt ended in an error.
	Failed
)

func (s Status) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
