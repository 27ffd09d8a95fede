package http

type (
	// VisitorMessageRequest struct - HTTP request DTO for the widget's send path
	VisitorMessageRequest struct {
		SessionID string `json:"session_id" validate:"required,max=128" form:"session_id"`
		Text      string `json:"text" validate:"required" form:"text"`
		Context   string `json:"context" validate:"omitempty" form:"context"`
	}

	// StaffMessageRequest struct - HTTP request DTO for the console's reply path
	StaffMessageRequest struct {
		SessionID string `json:"session_id" validate:"required,max=128" form:"session_id"`
		Text      string `json:"text" validate:"required" form:"text"`
	}
)
