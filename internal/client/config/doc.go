// Package config implements the layered settings provider for the client:
// defaults first, then an optional JSON file (-c/-config), then command-line
// flags, with later sources overriding earlier ones.
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "12s" or integer nanoseconds.
//
// The resulting Config is read-only at runtime and may be shared safely
// across multiple client instances.
package config
