package completion

import (
	"errors"
	"fmt"
)

// ErrStreamingNotSupported is returned by Stream. Streaming delivery is
// declared in the contract but intentionally unimplemented.
var ErrStreamingNotSupported = errors.New("completion: streaming not supported")

// ConfigurationError indicates a missing credential or otherwise unusable
// client setup. It is fatal and never retried.
type ConfigurationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("completion: configuration error: %s", e.Reason)
}

// TransportError indicates a network or service failure from a provider.
type TransportError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("completion: %s transport error: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying provider error.
func (e *TransportError) Unwrap() error { return e.Err }

// MalformedOutputError indicates that a structured-output reply could not be
// parsed as JSON. Raw carries the offending text for diagnostics.
type MalformedOutputError struct {
	Raw string
	Err error
}

// Error implements the error interface.
func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("completion: malformed structured output: %v", e.Err)
}

// Unwrap returns the underlying parse error.
func (e *MalformedOutputError) Unwrap() error { return e.Err }
