package http

import (
	"net/http"
	"time"

	"support-relay/internal/domain"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// NotFound response
	NotFound = Status{Code: http.StatusNotFound, Message: []string{"Sorry, Session not found"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

type (
	// SessionResponse struct - HTTP response DTO for a minted session id
	SessionResponse struct {
		ID string `json:"id"`
	}

	// MessageResponse struct - HTTP response DTO for one stored message
	MessageResponse struct {
		SessionID string    `json:"session_id"`
		Sender    string    `json:"sender"`
		Content   string    `json:"content"`
		Sequence  int64     `json:"sequence"`
		Timestamp time.Time `json:"timestamp"`
	}

	// ExchangeResponse struct - HTTP response DTO for a visitor submission.
	// ReplyMessage is omitted when generation was skipped or failed;
	// ReplyUnavailable marks the failure case.
	ExchangeResponse struct {
		StoredMessage    *MessageResponse `json:"stored_message"`
		ReplyMessage     *MessageResponse `json:"reply_message,omitempty"`
		ReplyUnavailable bool             `json:"reply_unavailable,omitempty"`
	}

	// SessionSummaryResponse struct - HTTP response DTO for one directory row
	SessionSummaryResponse struct {
		ID           string    `json:"id"`
		Preview      string    `json:"preview"`
		MessageCount int64     `json:"message_count"`
		UpdatedAt    time.Time `json:"updated_at"`
	}
)

// toMessageResponse converts a domain message to its HTTP shape
func toMessageResponse(msg *domain.Message) *MessageResponse {
	if msg == nil {
		return nil
	}
	return &MessageResponse{
		SessionID: msg.SessionID,
		Sender:    string(msg.Sender),
		Content:   msg.Content,
		Sequence:  msg.Sequence,
		Timestamp: msg.Timestamp,
	}
}
