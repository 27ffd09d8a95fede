package output

import "context"

// ReplyGenerator interface - Output port
// Defines what the application needs from the automated reply capability.
// Given the visitor's text and the embedding page's contextual blurb it
// produces a single reply string. Generation latency is expected to be
// high and variable; callers bound it with the context.
type ReplyGenerator interface {
	// Generate produces a reply for the visitor's text. contextText is the
	// site-supplied system context. Returns domain.ErrGeneratorUnavailable
	// (possibly wrapped) when the backing service cannot be reached, and
	// domain.ErrInvalidRequest for requests the service rejects outright.
	Generate(ctx context.Context, text, contextText string) (string, error)
}
