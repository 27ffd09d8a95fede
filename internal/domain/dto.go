package domain

// DTOs (Data Transfer Objects) - Domain layer request/response structures

type (
	// VisitorMessageRequest struct - Domain request DTO for the widget's send path
	VisitorMessageRequest struct {
		SessionID string
		Text      string
		Context   string
	}

	// StaffMessageRequest struct - Domain request DTO for the console's reply path
	StaffMessageRequest struct {
		SessionID string
		Text      string
	}

	// Exchange struct - Domain response DTO for a visitor submission.
	// Reply is nil when no generator is configured or when generation
	// failed; ReplyUnavailable distinguishes the failure case.
	Exchange struct {
		Stored           *Message
		Reply            *Message
		ReplyUnavailable bool
	}
)
