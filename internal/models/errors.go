// ABOUTME: Sentinel errors shared across the advisory engine
// ABOUTME: Wrapped with goerr at the failure site, matched with errors.Is by callers
package models

import "errors"

var (
	// ErrValidation marks bad or missing required input (client error)
	ErrValidation = errors.New("validation error")

	// ErrEmptyInput marks an empty chat message (client error)
	ErrEmptyInput = errors.New("message is required")

	// ErrEmbedderUnavailable marks a systemic embedding failure
	ErrEmbedderUnavailable = errors.New("embedder unavailable")

	// ErrAdapterUnavailable marks a failed source adapter call
	ErrAdapterUnavailable = errors.New("adapter unavailable")

	// ErrAdapterTimeout marks a source adapter call that ran out of time
	ErrAdapterTimeout = errors.New("adapter timeout")

	// ErrModelNotFound is returned by disease classifiers without a trained model
	ErrModelNotFound = errors.New("model not found")

	// ErrNotSupported is returned when a backend lacks an optional capability
	ErrNotSupported = errors.New("operation not supported")
)

// IsClientError reports whether err should be surfaced to the caller as bad input
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrEmptyInput)
}
