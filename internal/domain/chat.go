package domain

import "time"

// Sender type - identifies which side of the conversation produced a message
type Sender string

const (
	// SenderVisitor const - the person using the embedded widget
	SenderVisitor Sender = "visitor"
	// SenderStaff const - an operator replying from the console
	SenderStaff Sender = "staff"
	// SenderAssistant const - the automated reply generator
	SenderAssistant Sender = "assistant"
)

// Valid reports whether the sender is one of the supported roles
func (s Sender) Valid() bool {
	switch s {
	case SenderVisitor, SenderStaff, SenderAssistant:
		return true
	}
	return false
}

// MaxSessionIDLength const - upper bound on accepted session identifiers
const MaxSessionIDLength = 128

// Session struct - Core domain entity, one visitor conversation
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message struct - Core domain entity, one turn inside a session.
// Sequence is assigned by the relay at append time and is contiguous
// starting at 0 within a session. Timestamp never decreases within
// a session.
type Message struct {
	SessionID string    `json:"session_id"`
	Sender    Sender    `json:"sender"`
	Content   string    `json:"content"`
	Sequence  int64     `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionSummary struct - Directory listing row for one session
type SessionSummary struct {
	ID           string    `json:"id"`
	Preview      string    `json:"preview"`
	MessageCount int64     `json:"message_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}
