package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnavailable means the gateway has no usable client: the
	// credential was missing or backend setup failed at construction.
	ErrBackendUnavailable = errors.New("llm backend unavailable")

	// ErrUnsupportedProvider means the configured provider tag matches no
	// registered backend.
	ErrUnsupportedProvider = errors.New("unsupported llm provider")

	// ErrBackendCallFailed marks a failure reported by the backend during
	// a call. Use errors.As with *CallError for the provider and cause.
	ErrBackendCallFailed = errors.New("llm backend call failed")
)

// CallError carries the provider tag and backend-reported cause of a failed
// invocation.
type CallError struct {
	Provider Provider
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Provider, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrBackendCallFailed) match any CallError.
func (e *CallError) Is(target error) bool {
	return target == ErrBackendCallFailed
}

var (
	errMissingKey    = errors.New("missing api key")
	errEmptyResponse = errors.New("backend returned no content")
	errMissingClient = errors.New("no client configured")
)
