package application

import (
	"context"
	"strings"

	"support-relay/internal/domain"
	"support-relay/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RelayService struct - Application service implementing the message relay
// use cases. All chat state flows through the session store output port;
// the reply generator is optional and its failures never affect storage.
type RelayService struct {
	store           output.SessionStore
	generator       output.ReplyGenerator
	strictDiscovery bool
}

// NewRelayService func - Creates new relay service. generator may be nil,
// in which case visitor submissions are stored without an automated reply.
// strictDiscovery selects the write policy for staff messages addressed to
// session ids the store has never seen.
func NewRelayService(store output.SessionStore, generator output.ReplyGenerator, strictDiscovery bool) *RelayService {
	return &RelayService{
		store:           store,
		generator:       generator,
		strictDiscovery: strictDiscovery,
	}
}

// SubmitVisitorMessage func - Use case: store a visitor's message and, when
// a generator is configured, the generated assistant reply. The visitor
// message is durable before generation starts; a generator failure is
// reported on the exchange, not as an error.
func (s *RelayService) SubmitVisitorMessage(ctx context.Context, request domain.VisitorMessageRequest) (*domain.Exchange, error) {
	stored, err := s.store.Append(ctx, request.SessionID, domain.SenderVisitor, request.Text)
	if err != nil {
		return nil, err
	}

	exchange := &domain.Exchange{Stored: stored}
	if s.generator == nil {
		return exchange, nil
	}

	replyText, err := s.generator.Generate(ctx, strings.TrimSpace(request.Text), request.Context)
	if err != nil {
		logrus.Warnf("Reply generation failed for session %s: %v", request.SessionID, err)
		exchange.ReplyUnavailable = true
		return exchange, nil
	}

	reply, err := s.store.Append(ctx, request.SessionID, domain.SenderAssistant, replyText)
	if err != nil {
		// The visitor message is already stored; surface the reply loss
		// the same way as a generation failure.
		logrus.Errorf("Failed to store generated reply for session %s: %v", request.SessionID, err)
		exchange.ReplyUnavailable = true
		return exchange, nil
	}

	exchange.Reply = reply
	return exchange, nil
}

// SubmitStaffMessage func - Use case: store an operator's reply. Under the
// permissive policy the session is created implicitly; under strict
// discovery a never-seen id is rejected.
func (s *RelayService) SubmitStaffMessage(ctx context.Context, request domain.StaffMessageRequest) (*domain.Message, error) {
	if s.strictDiscovery {
		exists, err := s.store.Exists(ctx, request.SessionID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrSessionNotFound
		}
	}

	return s.store.Append(ctx, request.SessionID, domain.SenderStaff, request.Text)
}

// OpenSession func - Mints a collision-resistant session identifier and
// registers the empty session, so widgets need not derive ids from the
// wall clock. The session stays out of directory listings until its first
// message arrives.
func (s *RelayService) OpenSession(ctx context.Context) (*domain.Session, error) {
	return s.store.EnsureSession(ctx, uuid.NewString())
}
