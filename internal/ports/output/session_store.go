package output

import (
	"context"

	"support-relay/internal/domain"
)

// SessionStore interface - Output port
// Defines what the application needs for persisting chat sessions and their
// message histories. The store is the only owner of chat state; relay and
// directory services read and write exclusively through it.
//
// Implementations must guarantee that concurrent Append calls against the
// same session id are mutually excluded on sequence assignment (sequences
// come out contiguous starting at 0 with no gaps or duplicates) while
// appends against different session ids never block each other.
type SessionStore interface {
	// EnsureSession returns the session for the given id, creating an empty
	// one when the id has not been seen before. Returns
	// domain.ErrInvalidSessionID for an empty or oversized id.
	EnsureSession(ctx context.Context, id string) (*domain.Session, error)

	// Append stores one message at the end of the named session's history,
	// assigning its sequence number and timestamp. The session is created
	// implicitly when absent. Returns domain.ErrEmptyContent when the
	// content is empty after trimming.
	Append(ctx context.Context, sessionID string, sender domain.Sender, content string) (*domain.Message, error)

	// Messages returns the full history of a session in sequence order.
	// An unknown id yields an empty slice, not an error.
	Messages(ctx context.Context, sessionID string) ([]domain.Message, error)

	// ListSessions returns a summary row for every known session, most
	// recently updated first. Building the summaries must not mutate
	// any session state.
	ListSessions(ctx context.Context) ([]domain.SessionSummary, error)

	// Exists reports whether a session id has been seen before. Used by
	// the strict-discovery write policy.
	Exists(ctx context.Context, sessionID string) (bool, error)

	// Ping checks the health of the backing storage.
	Ping(ctx context.Context) error

	// Close releases backing-storage resources.
	Close() error
}
