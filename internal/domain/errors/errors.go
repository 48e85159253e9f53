package errors

import "errors"

var (
	// ErrNotAuthenticated signals that no auth token is stored on the device.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrNotFound         = errors.New("not found")
	ErrNotMounted       = errors.New("chat view not mounted")
	ErrClosed           = errors.New("view closed")
	ErrStale            = errors.New("stale result discarded")
)
