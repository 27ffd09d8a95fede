package application

import (
	"context"
	"strings"
	"testing"

	"support-relay/internal/adapters/output/memory"
	"support-relay/internal/domain"
)

// TestListSessionsTruncatesPreviews tests preview truncation by rune count
func TestListSessionsTruncatesPreviews(t *testing.T) {
	store := memory.NewMemorySessionStore()
	ctx := context.Background()

	long := strings.Repeat("a", 50)
	if _, err := store.Append(ctx, "S1", domain.SenderVisitor, long); err != nil {
		t.Fatalf("unexpected append error: %v", err)
	}

	svc := NewDirectoryService(store, 10)
	summaries, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 row, got %d", len(summaries))
	}
	want := strings.Repeat("a", 10) + "…"
	if summaries[0].Preview != want {
		t.Errorf("expected preview %q, got %q", want, summaries[0].Preview)
	}
}

// TestListSessionsLeavesShortPreviewsAlone tests that short messages pass
// through untouched and multi-byte text is cut on rune boundaries.
func TestListSessionsLeavesShortPreviewsAlone(t *testing.T) {
	store := memory.NewMemorySessionStore()
	ctx := context.Background()

	store.Append(ctx, "short", domain.SenderVisitor, "hei")
	store.Append(ctx, "norsk", domain.SenderVisitor, "blåbærsyltetøy på brødskiva")

	svc := NewDirectoryService(store, 14)
	summaries, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	byID := map[string]string{}
	for _, s := range summaries {
		byID[s.ID] = s.Preview
	}
	if byID["short"] != "hei" {
		t.Errorf("expected untouched preview, got %q", byID["short"])
	}
	if byID["norsk"] != "blåbærsyltetøy…" {
		t.Errorf("expected rune-boundary cut, got %q", byID["norsk"])
	}
}

// TestListSessionsDefaultPreviewLength tests the fallback when no length
// is configured
func TestListSessionsDefaultPreviewLength(t *testing.T) {
	store := memory.NewMemorySessionStore()
	ctx := context.Background()

	long := strings.Repeat("x", DefaultPreviewLength+20)
	store.Append(ctx, "S1", domain.SenderVisitor, long)

	svc := NewDirectoryService(store, 0)
	summaries, _ := svc.ListSessions(ctx)
	want := strings.Repeat("x", DefaultPreviewLength) + "…"
	if summaries[0].Preview != want {
		t.Errorf("expected default-length preview, got %d runes", len([]rune(summaries[0].Preview)))
	}
}

// TestListingDoesNotMutateStore tests that two listings with no intervening
// writes observe identical store state.
func TestListingDoesNotMutateStore(t *testing.T) {
	store := memory.NewMemorySessionStore()
	ctx := context.Background()

	store.Append(ctx, "S1", domain.SenderVisitor, "hello")
	svc := NewDirectoryService(store, 5)

	first, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(first) != len(second) || first[0] != second[0] {
		t.Errorf("expected identical listings, got %+v and %+v", first, second)
	}

	history, _ := store.Messages(ctx, "S1")
	if len(history) != 1 || history[0].Content != "hello" {
		t.Errorf("listing mutated the store: %+v", history)
	}
}

// TestSessionMessagesUnknownIDYieldsEmptyList tests the console's empty
// state for ids that were never written to.
func TestSessionMessagesUnknownIDYieldsEmptyList(t *testing.T) {
	svc := NewDirectoryService(memory.NewMemorySessionStore(), 0)

	history, err := svc.SessionMessages(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %+v", history)
	}
}
