package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrSessionExpired     = errors.New("session expired")

	// ErrValidation marks payloads rejected before any upstream call.
	ErrValidation = errors.New("invalid payload")

	// ErrUpstream marks a non-success or transport-level failure from the
	// voucher API. The wrapped message is the upstream one when present.
	ErrUpstream = errors.New("upstream request failed")

	// ErrNotFoundLocal is returned when an update or delete target is missing
	// from the local collection after the upstream call succeeded. Non-fatal:
	// the server remains authoritative.
	ErrNotFoundLocal = errors.New("entity not in local collection")
)
