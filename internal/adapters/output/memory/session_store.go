package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"support-relay/internal/domain"
	"support-relay/internal/ports/output"
)

// Compile-time check to ensure MemorySessionStore implements SessionStore interface
var _ output.SessionStore = (*MemorySessionStore)(nil)

// MemorySessionStore struct - Output adapter for in-memory chat storage
// Uses sync.Map keyed by session id for lock-free lookup, so appends to
// different sessions never contend. Each record carries its own mutex
// serializing sequence assignment and the append itself for that session.
// Sessions are retained for the process lifetime; there is no eviction.
type MemorySessionStore struct {
	sessions sync.Map
}

// sessionRecord holds one session and its append-only message history.
// lastStamp clamps timestamps so they never decrease within a session
// even if the wall clock steps backwards between appends.
type sessionRecord struct {
	mu        sync.Mutex
	session   domain.Session
	messages  []domain.Message
	lastStamp time.Time
}

// NewMemorySessionStore creates the baseline in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func validateSessionID(id string) error {
	if id == "" || len(id) > domain.MaxSessionIDLength {
		return domain.ErrInvalidSessionID
	}
	return nil
}

// record returns the existing record for an id or creates an empty one.
func (m *MemorySessionStore) record(id string) *sessionRecord {
	if value, ok := m.sessions.Load(id); ok {
		return value.(*sessionRecord)
	}
	now := time.Now().UTC()
	fresh := &sessionRecord{
		session: domain.Session{ID: id, CreatedAt: now, UpdatedAt: now},
	}
	actual, _ := m.sessions.LoadOrStore(id, fresh)
	return actual.(*sessionRecord)
}

// EnsureSession returns the session for an id, creating it when absent.
func (m *MemorySessionStore) EnsureSession(_ context.Context, id string) (*domain.Session, error) {
	if err := validateSessionID(id); err != nil {
		return nil, err
	}
	rec := m.record(id)
	rec.mu.Lock()
	session := rec.session
	rec.mu.Unlock()
	return &session, nil
}

// Append stores one message at the end of the session's history.
// The session is created implicitly when absent.
func (m *MemorySessionStore) Append(_ context.Context, sessionID string, sender domain.Sender, content string) (*domain.Message, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyContent
	}

	rec := m.record(sessionID)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	now := time.Now().UTC()
	if now.Before(rec.lastStamp) {
		now = rec.lastStamp
	}
	rec.lastStamp = now

	message := domain.Message{
		SessionID: sessionID,
		Sender:    sender,
		Content:   content,
		Sequence:  int64(len(rec.messages)),
		Timestamp: now,
	}
	rec.messages = append(rec.messages, message)
	rec.session.UpdatedAt = now

	return &message, nil
}

// Messages returns a copy of the session's history in sequence order.
// Unknown ids yield an empty slice.
func (m *MemorySessionStore) Messages(_ context.Context, sessionID string) ([]domain.Message, error) {
	value, ok := m.sessions.Load(sessionID)
	if !ok {
		return []domain.Message{}, nil
	}
	rec := value.(*sessionRecord)

	rec.mu.Lock()
	defer rec.mu.Unlock()

	history := make([]domain.Message, len(rec.messages))
	copy(history, rec.messages)
	return history, nil
}

// ListSessions returns a summary row per session, most recently updated
// first. Sessions that exist but hold no messages yet are omitted; the
// directory only advertises sessions a message has been appended to.
func (m *MemorySessionStore) ListSessions(_ context.Context) ([]domain.SessionSummary, error) {
	summaries := []domain.SessionSummary{}
	m.sessions.Range(func(_, value interface{}) bool {
		rec := value.(*sessionRecord)
		rec.mu.Lock()
		n := len(rec.messages)
		summary := domain.SessionSummary{
			ID:           rec.session.ID,
			MessageCount: int64(n),
			UpdatedAt:    rec.session.UpdatedAt,
		}
		if n > 0 {
			summary.Preview = rec.messages[n-1].Content
		}
		rec.mu.Unlock()
		if n > 0 {
			summaries = append(summaries, summary)
		}
		return true
	})

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].UpdatedAt.Equal(summaries[j].UpdatedAt) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

// Exists reports whether a session id has been seen before.
func (m *MemorySessionStore) Exists(_ context.Context, sessionID string) (bool, error) {
	_, ok := m.sessions.Load(sessionID)
	return ok, nil
}

// Ping always succeeds; the in-memory store has no backing connection.
func (m *MemorySessionStore) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemorySessionStore) Close() error {
	return nil
}
