package domain

import "errors"

// Sentinel errors - use with errors.Is()
var (
	// ErrNotFound indicates the target entity id does not exist in its collection.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates invalid input.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates a missing, malformed, or expired token.
	// Callers get the same error for every failure mode.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUploadRejected indicates a rejected file upload (wrong type or oversize).
	ErrUploadRejected = errors.New("upload rejected")

	// Store errors. WriteDenied is kept separate from WriteFailed so the
	// handler can tell the operator to switch persistence backends instead
	// of showing a generic failure.
	ErrStoreUnavailable = errors.New("portfolio data unavailable")
	ErrStoreWriteDenied = errors.New("portfolio data write denied")
	ErrStoreWriteFailed = errors.New("portfolio data write failed")
)
