package domain

import "errors"

var (
	// ErrDuplicateRegistration is returned when a registration collides with
	// an existing (kind, match key, sub-type) entry.
	ErrDuplicateRegistration = errors.New("handler already registered for this key")

	// ErrHandlerNotFound is the normal dispatch outcome when no registration
	// matches an interaction. The transport maps it to a not-found status.
	ErrHandlerNotFound = errors.New("no handler found for interaction")

	// ErrAlreadyResponded indicates a handler violated the single-response
	// contract by committing a second initial response.
	ErrAlreadyResponded = errors.New("interaction has already been responded to")

	// ErrUnsupportedResponseElement is returned when a handler returns a
	// value the response resolver cannot interpret.
	ErrUnsupportedResponseElement = errors.New("unsupported response element")

	// ErrNoResponse is returned when a handler returns neither a response
	// value nor an error.
	ErrNoResponse = errors.New("handler returned no response")
)
