package input

import (
	"context"

	"support-relay/internal/domain"
)

// DirectoryService interface - Input port (use case)
// Defines the discovery surface letting a console enumerate sessions it did
// not create and read their histories.
type DirectoryService interface {
	// ListSessions returns a snapshot of all known sessions with a preview
	// of each session's most recent message.
	ListSessions(ctx context.Context) ([]domain.SessionSummary, error)

	// SessionMessages returns the full history of one session in append
	// order. An unknown id yields an empty list; the console renders an
	// empty state rather than an error.
	SessionMessages(ctx context.Context, sessionID string) ([]domain.Message, error)
}
