package application

import (
	"context"
	"errors"
	"testing"

	"support-relay/internal/adapters/output/memory"
	"support-relay/internal/domain"
)

// Mock implementations for testing

// MockReplyGenerator implements output.ReplyGenerator for testing
type MockReplyGenerator struct {
	GenerateFunc func(ctx context.Context, text, contextText string) (string, error)

	// Captured values for assertions
	LastText    string
	LastContext string
	Calls       int
}

func (m *MockReplyGenerator) Generate(ctx context.Context, text, contextText string) (string, error) {
	m.Calls++
	m.LastText = text
	m.LastContext = contextText
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, text, contextText)
	}
	return "generated reply", nil
}

// TestSubmitVisitorMessageStoresBothTurns tests the happy path: the visitor
// message lands at sequence 0 and the generated reply at sequence 1.
func TestSubmitVisitorMessageStoresBothTurns(t *testing.T) {
	store := memory.NewMemorySessionStore()
	generator := &MockReplyGenerator{}
	svc := NewRelayService(store, generator, false)
	ctx := context.Background()

	exchange, err := svc.SubmitVisitorMessage(ctx, domain.VisitorMessageRequest{
		SessionID: "S1",
		Text:      "Hello",
		Context:   "About Asfaltios...",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if exchange.Stored == nil || exchange.Stored.Sender != domain.SenderVisitor || exchange.Stored.Sequence != 0 {
		t.Errorf("unexpected stored message: %+v", exchange.Stored)
	}
	if exchange.Reply == nil || exchange.Reply.Sender != domain.SenderAssistant || exchange.Reply.Sequence != 1 {
		t.Errorf("unexpected reply message: %+v", exchange.Reply)
	}
	if exchange.ReplyUnavailable {
		t.Error("expected reply to be available")
	}
	if generator.LastText != "Hello" || generator.LastContext != "About Asfaltios..." {
		t.Errorf("generator got text %q context %q", generator.LastText, generator.LastContext)
	}

	history, _ := store.Messages(ctx, "S1")
	if len(history) != 2 {
		t.Fatalf("expected 2 stored messages, got %d", len(history))
	}
	if history[0].Sender != domain.SenderVisitor || history[1].Sender != domain.SenderAssistant {
		t.Errorf("unexpected history order: %+v", history)
	}
}

// TestSubmitVisitorMessageSurvivesGeneratorFailure tests the partial-failure
// policy: the visitor message stays stored and the exchange carries the flag.
func TestSubmitVisitorMessageSurvivesGeneratorFailure(t *testing.T) {
	store := memory.NewMemorySessionStore()
	generator := &MockReplyGenerator{
		GenerateFunc: func(ctx context.Context, text, contextText string) (string, error) {
			return "", domain.ErrGeneratorUnavailable
		},
	}
	svc := NewRelayService(store, generator, false)
	ctx := context.Background()

	exchange, err := svc.SubmitVisitorMessage(ctx, domain.VisitorMessageRequest{
		SessionID: "S1",
		Text:      "Hello",
	})
	if err != nil {
		t.Fatalf("expected no error despite generator failure, got %v", err)
	}
	if exchange.Stored == nil {
		t.Fatal("expected the visitor message to be stored")
	}
	if exchange.Reply != nil {
		t.Errorf("expected nil reply, got %+v", exchange.Reply)
	}
	if !exchange.ReplyUnavailable {
		t.Error("expected ReplyUnavailable to be set")
	}

	history, _ := store.Messages(ctx, "S1")
	if len(history) != 1 || history[0].Sender != domain.SenderVisitor {
		t.Errorf("expected exactly the visitor message in history, got %+v", history)
	}
}

// TestSubmitVisitorMessageWithoutGenerator tests that a nil generator means
// storage only, with no unavailability flag.
func TestSubmitVisitorMessageWithoutGenerator(t *testing.T) {
	store := memory.NewMemorySessionStore()
	svc := NewRelayService(store, nil, false)

	exchange, err := svc.SubmitVisitorMessage(context.Background(), domain.VisitorMessageRequest{
		SessionID: "S1",
		Text:      "Hello",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if exchange.Reply != nil || exchange.ReplyUnavailable {
		t.Errorf("expected storage-only exchange, got %+v", exchange)
	}
}

// TestSubmitVisitorMessageValidationShortCircuitsGenerator tests that
// invalid input never reaches the generator.
func TestSubmitVisitorMessageValidationShortCircuitsGenerator(t *testing.T) {
	store := memory.NewMemorySessionStore()
	generator := &MockReplyGenerator{}
	svc := NewRelayService(store, generator, false)
	ctx := context.Background()

	if _, err := svc.SubmitVisitorMessage(ctx, domain.VisitorMessageRequest{SessionID: "", Text: "hi"}); !errors.Is(err, domain.ErrInvalidSessionID) {
		t.Errorf("expected ErrInvalidSessionID, got %v", err)
	}
	if _, err := svc.SubmitVisitorMessage(ctx, domain.VisitorMessageRequest{SessionID: "S1", Text: "   "}); !errors.Is(err, domain.ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}
	if generator.Calls != 0 {
		t.Errorf("expected generator to stay untouched, got %d calls", generator.Calls)
	}
}

// TestSubmitStaffMessagePermissiveCreatesSession tests the default policy:
// a staff reply to a never-seen id creates the session at sequence 0.
func TestSubmitStaffMessagePermissiveCreatesSession(t *testing.T) {
	store := memory.NewMemorySessionStore()
	svc := NewRelayService(store, nil, false)
	ctx := context.Background()

	msg, err := svc.SubmitStaffMessage(ctx, domain.StaffMessageRequest{SessionID: "S2", Text: "Hi, how can we help?"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if msg.Sender != domain.SenderStaff || msg.Sequence != 0 {
		t.Errorf("unexpected staff message: %+v", msg)
	}

	exists, _ := store.Exists(ctx, "S2")
	if !exists {
		t.Error("expected session to exist after staff write")
	}
}

// TestSubmitStaffMessageStrictRejectsUnseenSession tests the strict-discovery
// policy for never-seen ids, and acceptance once the session exists.
func TestSubmitStaffMessageStrictRejectsUnseenSession(t *testing.T) {
	store := memory.NewMemorySessionStore()
	svc := NewRelayService(store, nil, true)
	ctx := context.Background()

	if _, err := svc.SubmitStaffMessage(ctx, domain.StaffMessageRequest{SessionID: "ghost", Text: "anyone?"}); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	// Visitor traffic creates the session; the staff reply then lands.
	if _, err := store.Append(ctx, "S3", domain.SenderVisitor, "hello"); err != nil {
		t.Fatalf("unexpected append error: %v", err)
	}
	msg, err := svc.SubmitStaffMessage(ctx, domain.StaffMessageRequest{SessionID: "S3", Text: "welcome"})
	if err != nil {
		t.Fatalf("expected staff reply to succeed, got %v", err)
	}
	if msg.Sequence != 1 {
		t.Errorf("expected sequence 1, got %d", msg.Sequence)
	}
}

// TestOpenSessionProducesUniqueRegisteredIDs tests id minting for collision
// resistance and that minted ids are known to the store afterwards
func TestOpenSessionProducesUniqueRegisteredIDs(t *testing.T) {
	store := memory.NewMemorySessionStore()
	svc := NewRelayService(store, nil, false)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		session, err := svc.OpenSession(ctx)
		if err != nil {
			t.Fatalf("expected OpenSession to succeed, got %v", err)
		}
		if session.ID == "" || len(session.ID) > domain.MaxSessionIDLength {
			t.Fatalf("minted id out of bounds: %q", session.ID)
		}
		if seen[session.ID] {
			t.Fatalf("duplicate minted id: %q", session.ID)
		}
		seen[session.ID] = true

		exists, err := store.Exists(ctx, session.ID)
		if err != nil || !exists {
			t.Fatalf("minted id %q not registered with the store", session.ID)
		}
	}
}
