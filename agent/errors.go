// ABOUTME: Error taxonomy for the agent pipeline
// ABOUTME: Defines the sentinel errors that cross the pipeline boundary
package agent

import "errors"

var (
	// ErrNotFound is returned for an unknown transcript or activity id.
	// It is fatal to the single request and propagated to the caller.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for an empty query or empty transcript
	// body. Fatal to the single request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamUnavailable marks a failed or timed-out model call. It is
	// absorbed inside the pipeline by the fallback strategy and never
	// surfaces to callers as a hard failure.
	ErrUpstreamUnavailable = errors.New("upstream model unavailable")
)
