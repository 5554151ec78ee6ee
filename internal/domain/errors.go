package domain

import "errors"

// Error kinds surfaced by the remote-store clients. Callers match with
// errors.Is; the wrapped message keeps the operation detail.
var (
	// ErrNotFound: the requested record has no match (404).
	ErrNotFound = errors.New("not found")

	// ErrValidation: a record is missing required fields. Raised locally,
	// before any network call.
	ErrValidation = errors.New("validation failed")

	// ErrAuth: bearer token missing, expired or rejected (401/403).
	ErrAuth = errors.New("authorization failed")

	// ErrNetwork: transport-level failure or an unexpected remote status.
	ErrNetwork = errors.New("network failure")
)
