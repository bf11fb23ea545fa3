package aori

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected represents a send attempted on an unconnected channel
	ErrNotConnected = errors.New("channel not connected")

	// ErrMissingAuthToken represents a privileged call without a token
	ErrMissingAuthToken = errors.New("missing auth token")
)

// ConfigError represents a missing or malformed configuration value,
// surfaced before any network activity.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required config: %s", e.Field)
}

// ConnectError represents a transport or chain-resolution failure
// during session construction. Fatal, not retried.
type ConnectError struct {
	Endpoint string
	Err      error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// SendError represents a channel write failure. The session should be
// treated as unusable afterwards.
type SendError struct {
	Method string
	Err    error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("failed to send %s: %v", e.Method, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// SignError represents a signing failure: the held key is unusable or
// the digest is malformed. Fatal to the specific call.
type SignError struct {
	Err error
}

func (e *SignError) Error() string {
	return fmt.Sprintf("signing failed: %v", e.Err)
}

func (e *SignError) Unwrap() error {
	return e.Err
}

// ProtocolError represents an unexpected or malformed response field
// observed by the correlating caller.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return e.Message
}
