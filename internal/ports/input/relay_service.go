package input

import (
	"context"

	"support-relay/internal/domain"
)

// RelayService interface - Input port (use case)
// Defines the externally reachable write surface: turning a visitor's
// outgoing text into one or two stored messages, and a staff reply into one.
type RelayService interface {
	// SubmitVisitorMessage appends the visitor's message and, when a reply
	// generator is configured, the generated assistant reply. Generator
	// failure does not roll back the stored visitor message; the returned
	// exchange carries ReplyUnavailable instead.
	SubmitVisitorMessage(ctx context.Context, request domain.VisitorMessageRequest) (*domain.Exchange, error)

	// SubmitStaffMessage appends a staff message to a session. Under the
	// permissive policy any id is accepted and the session is created
	// implicitly; under strict discovery an unseen id yields
	// domain.ErrSessionNotFound.
	SubmitStaffMessage(ctx context.Context, request domain.StaffMessageRequest) (*domain.Message, error)

	// OpenSession mints a fresh collision-resistant session identifier and
	// registers it with the store, for widgets that do not want to derive
	// their own ids.
	OpenSession(ctx context.Context) (*domain.Session, error)
}
