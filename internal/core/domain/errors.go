package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotAvailable indicates a material has no resolvable file to view.
	ErrNotAvailable = errors.New("material file not available")

	// ErrLoadFailed indicates the document byte stream could not be fetched.
	ErrLoadFailed = errors.New("document load failed")

	// ErrRenderFailed indicates a specific page could not be rendered.
	// Navigating to another page or changing zoom is the recovery path.
	ErrRenderFailed = errors.New("page render failed")

	// ErrProgressSync indicates a reading-progress write or read failed.
	// Progress sync is best-effort; this never blocks the viewer.
	ErrProgressSync = errors.New("progress sync failed")

	// ErrViewerClosed indicates the viewer has no open document.
	ErrViewerClosed = errors.New("viewer closed")

	// Authentication Errors.

	// ErrAuthRequired indicates the operation needs a logged-in session.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the credentials or token were rejected.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrAuthExpired indicates the bearer token has expired.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrForbidden indicates the current user lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// Transport Errors.

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrServerError indicates the API responded with a 5xx status.
	ErrServerError = errors.New("server error")
)
