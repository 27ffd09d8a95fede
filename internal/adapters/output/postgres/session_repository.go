package postgres

import (
	"context"
	"strings"
	"time"

	"support-relay/internal/domain"
	"support-relay/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Compile-time check to ensure SessionRepository implements SessionStore interface
var _ output.SessionStore = (*SessionRepository)(nil)

// chatSession struct - persistence entity for one conversation
type chatSession struct {
	ID        string    `gorm:"type:varchar(128);primary_key;"`
	CreatedAt time.Time `gorm:"type:timestamp"`
	UpdatedAt time.Time `gorm:"type:timestamp"`
}

// TableName func
func (s *chatSession) TableName() string {
	return "chat_sessions"
}

// chatMessage struct - persistence entity for one stored turn
type chatMessage struct {
	ID        *uuid.UUID `gorm:"type:uuid;primary_key;"`
	SessionID string     `gorm:"type:varchar(128);not null;index:idx_session_seq,unique,priority:1"`
	Seq       int64      `gorm:"not null;index:idx_session_seq,unique,priority:2"`
	Sender    string     `gorm:"type:varchar(16);not null;"`
	Content   string     `gorm:"type:TEXT;not null;"`
	CreatedAt time.Time  `gorm:"type:timestamp"`
}

// TableName func
func (m *chatMessage) TableName() string {
	return "chat_messages"
}

// BeforeCreate hook - generates UUID before creating
func (m *chatMessage) BeforeCreate(tx *gorm.DB) (err error) {
	id, err := uuid.NewRandom() // v4
	if err != nil {
		return err
	}
	m.ID = &id
	return nil
}

// SessionRepository struct - Secondary/Driven adapter for PostgreSQL.
// Per-session mutual exclusion on sequence assignment comes from locking
// the session row FOR UPDATE inside the append transaction, so appends to
// different sessions proceed independently.
type SessionRepository struct {
	dbGorm *gorm.DB
}

// NewSessionRepository func - Creates new PostgreSQL session repository
func NewSessionRepository(dbGorm *gorm.DB) (*SessionRepository, error) {
	if err := dbGorm.AutoMigrate(&chatSession{}, &chatMessage{}); err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return &SessionRepository{
		dbGorm: dbGorm,
	}, nil
}

func validateSessionID(id string) error {
	if id == "" || len(id) > domain.MaxSessionIDLength {
		return domain.ErrInvalidSessionID
	}
	return nil
}

// EnsureSession func - Returns the session for an id, creating it when absent
func (p *SessionRepository) EnsureSession(ctx context.Context, id string) (*domain.Session, error) {
	if err := validateSessionID(id); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := chatSession{ID: id, CreatedAt: now, UpdatedAt: now}
	if err := p.dbGorm.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	if err := p.dbGorm.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return &domain.Session{ID: row.ID, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt}, nil
}

// Append func - Stores one message, assigning the next per-session sequence
func (p *SessionRepository) Append(ctx context.Context, sessionID string, sender domain.Sender, content string) (*domain.Message, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyContent
	}

	tx := p.dbGorm.WithContext(ctx).Begin()
	defer func() {
		tx.Rollback()
	}()

	now := time.Now().UTC()
	session := chatSession{ID: sessionID, CreatedAt: now, UpdatedAt: now}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&session).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	// Lock the session row so concurrent appends to the same session
	// serialize on sequence assignment.
	var locked chatSession
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&locked, "id = ?", sessionID).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	var next int64
	if err := tx.Model(&chatMessage{}).
		Where("session_id = ?", sessionID).
		Select("COALESCE(MAX(seq) + 1, 0)").
		Scan(&next).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	stamp := now
	if stamp.Before(locked.UpdatedAt) {
		stamp = locked.UpdatedAt
	}

	record := chatMessage{
		SessionID: sessionID,
		Seq:       next,
		Sender:    string(sender),
		Content:   content,
		CreatedAt: stamp,
	}
	if err := tx.Create(&record).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	if err := tx.Model(&chatSession{}).
		Where("id = ?", sessionID).
		Update("updated_at", stamp).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	return &domain.Message{
		SessionID: sessionID,
		Sender:    sender,
		Content:   content,
		Sequence:  next,
		Timestamp: stamp,
	}, nil
}

// Messages func - Retrieves a session's history in sequence order
func (p *SessionRepository) Messages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	var rows []chatMessage
	if err := p.dbGorm.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("seq ASC").
		Find(&rows).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	history := make([]domain.Message, 0, len(rows))
	for _, row := range rows {
		history = append(history, domain.Message{
			SessionID: row.SessionID,
			Sender:    domain.Sender(row.Sender),
			Content:   row.Content,
			Sequence:  row.Seq,
			Timestamp: row.CreatedAt,
		})
	}
	return history, nil
}

// summaryRow struct - scan target for the listing query
type summaryRow struct {
	ID           string
	Preview      string
	MessageCount int64
	UpdatedAt    time.Time
}

// ListSessions func - Lists sessions holding at least one message,
// most recently updated first
func (p *SessionRepository) ListSessions(ctx context.Context) ([]domain.SessionSummary, error) {
	var rows []summaryRow
	query := `
		SELECT s.id,
		       s.updated_at,
		       COUNT(m.id) AS message_count,
		       (SELECT m2.content FROM chat_messages m2
		        WHERE m2.session_id = s.id
		        ORDER BY m2.seq DESC LIMIT 1) AS preview
		FROM chat_sessions s
		JOIN chat_messages m ON m.session_id = s.id
		GROUP BY s.id, s.updated_at
		ORDER BY s.updated_at DESC, s.id ASC`
	if err := p.dbGorm.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	summaries := make([]domain.SessionSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.SessionSummary{
			ID:           row.ID,
			Preview:      row.Preview,
			MessageCount: row.MessageCount,
			UpdatedAt:    row.UpdatedAt,
		})
	}
	return summaries, nil
}

// Exists func - Reports whether a session row is present
func (p *SessionRepository) Exists(ctx context.Context, sessionID string) (bool, error) {
	var count int64
	if err := p.dbGorm.WithContext(ctx).
		Model(&chatSession{}).
		Where("id = ?", sessionID).
		Count(&count).Error; err != nil {
		logrus.Errorln(err)
		return false, err
	}
	return count > 0, nil
}

// Ping func - Checks the database connection
func (p *SessionRepository) Ping(ctx context.Context) error {
	sqlDB, err := p.dbGorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close func - Closes the underlying connection pool
func (p *SessionRepository) Close() error {
	sqlDB, err := p.dbGorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
