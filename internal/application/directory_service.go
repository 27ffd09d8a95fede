package application

import (
	"context"

	"support-relay/internal/domain"
	"support-relay/internal/ports/output"
)

// DefaultPreviewLength const - preview length in runes used when none is configured
const DefaultPreviewLength = 80

// DirectoryService struct - Application service implementing session
// discovery for consoles that did not create the sessions they read.
type DirectoryService struct {
	store         output.SessionStore
	previewLength int
}

// NewDirectoryService func - Creates new directory service. previewLength
// bounds the listing's message previews in runes; zero selects the default.
func NewDirectoryService(store output.SessionStore, previewLength int) *DirectoryService {
	if previewLength <= 0 {
		previewLength = DefaultPreviewLength
	}
	return &DirectoryService{
		store:         store,
		previewLength: previewLength,
	}
}

// ListSessions func - Use case: snapshot of all known sessions with
// truncated previews of their latest messages.
func (s *DirectoryService) ListSessions(ctx context.Context) ([]domain.SessionSummary, error) {
	summaries, err := s.store.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].Preview = truncatePreview(summaries[i].Preview, s.previewLength)
	}
	return summaries, nil
}

// SessionMessages func - Use case: full history of one session. Unknown
// ids yield an empty list so the console can render an empty state.
func (s *DirectoryService) SessionMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	return s.store.Messages(ctx, sessionID)
}

// truncatePreview bounds a preview to limit runes, appending an ellipsis
// when text was cut.
func truncatePreview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}
