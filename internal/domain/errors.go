package domain

import "errors"

// Relay error types

var (
	// ErrInvalidSessionID indicates an empty or oversized session identifier
	ErrInvalidSessionID = errors.New("invalid session id")

	// ErrEmptyContent indicates message text that is empty after trimming
	ErrEmptyContent = errors.New("empty message content")

	// ErrSessionNotFound indicates a session the directory has never seen
	// (raised on the staff write path only when strict discovery is enabled)
	ErrSessionNotFound = errors.New("session not found")

	// ErrGeneratorUnavailable indicates the reply generator failed or timed out
	ErrGeneratorUnavailable = errors.New("reply generator unavailable")

	// ErrInvalidRequest indicates an invalid request was made (4xx client errors)
	ErrInvalidRequest = errors.New("invalid request")
)
