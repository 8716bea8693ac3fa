// Package auth contains the client-side authentication core.
//
// # Overview
//
// The package provides:
//  1. The Client orchestrator, which owns the connection-status state
//     machine, the current credentials, and the lifecycle operations
//     BeginLogin, Logout, Save, and Load.
//  2. The Variant contract that concrete authentication strategies plug
//     into, plus VariantDefaults supplying the default hook behavior.
//  3. Built-in variants: anonymous (no credentials, connects immediately),
//     password (OAuth2 password grant via a transport.Transport), and
//     bearer (pre-issued JWT validated locally).
//
// # Status state machine
//
// A client starts Disconnected. BeginLogin unconditionally moves it to
// Connecting before the variant runs; the variant alone decides the
// terminal state: Connected on success, Disconnected or Failed on failure.
// Logout always ends in Disconnected, even when the variant's logout
// procedure errored. Status changes flow through a single internal
// transition primitive that debug-logs the new value before observers are
// notified.
//
// # Error Handling
//
// Failure conditions are exposed as sentinel errors matched with
// errors.Is: ErrInvalidArgument, ErrInvalidOperation, ErrTransport.
// Status observers never receive errors on the feed itself; they see
// failures only through the resulting status value.
package auth
