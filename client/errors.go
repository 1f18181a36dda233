package client

import (
	"errors"
	"fmt"
)

// Sentinel errors produced by remote callers. These form a closed set of
// tagged variants so classification never depends on a particular SDK's
// exception hierarchy.
var (
	// ErrTimeout indicates the remote call timed out.
	ErrTimeout = errors.New("request timed out")

	// ErrUnavailable indicates the remote service is temporarily unavailable.
	ErrUnavailable = errors.New("service unavailable")

	// ErrRateLimited indicates the remote side rejected the call for rate
	// limiting (distinct from the local limiter, which blocks instead).
	ErrRateLimited = errors.New("rate limited by remote service")

	// ErrAPIRetryable indicates a generic retryable API failure.
	ErrAPIRetryable = errors.New("retryable API error")

	// ErrAuthentication indicates the credential was rejected.
	ErrAuthentication = errors.New("authentication failed")

	// ErrMalformedRequest indicates the request was rejected as invalid.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrEmptyInput indicates the user message was blank.
	ErrEmptyInput = errors.New("empty user input")

	// ErrUnknownCaller indicates the requested remote caller is not registered.
	ErrUnknownCaller = errors.New("unknown remote caller")
)

// Error wraps remote-call errors with operation context.
type Error struct {
	Op        string // Operation that failed ("send", "complete")
	Err       error  // Underlying error
	Retryable bool   // Whether the error is likely transient
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a wrapped remote-call error.
func NewError(op string, err error, retryable bool) *Error {
	return &Error{Op: op, Err: err, Retryable: retryable}
}

// IsTransient reports whether an error is worth retrying. Wrapped
// errors carry their own Retryable flag; bare errors are matched against
// the transient sentinels. Anything unrecognized is fatal, so unknown
// failure modes fail closed instead of looping.
func IsTransient(err error) bool {
	var callErr *Error
	if errors.As(err, &callErr) {
		return callErr.Retryable
	}

	return errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrAPIRetryable)
}

// IsAuthError reports whether an error is an authentication failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthentication)
}
