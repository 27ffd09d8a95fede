// Package relayclient provides a client for the support relay HTTP API,
// plus a poller that keeps a session list and one selected conversation
// synchronized against the server.
package relayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a support relay API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new relay client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Message represents one stored chat message.
type Message struct {
	SessionID string    `json:"session_id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Sequence  int64     `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionSummary represents one row of the session directory.
type SessionSummary struct {
	ID           string    `json:"id"`
	Preview      string    `json:"preview"`
	MessageCount int64     `json:"message_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Exchange is the result of a visitor submission: the stored message
// and, when the server produced one, the automated reply.
type Exchange struct {
	StoredMessage    *Message `json:"stored_message"`
	ReplyMessage     *Message `json:"reply_message,omitempty"`
	ReplyUnavailable bool     `json:"reply_unavailable,omitempty"`
}

type sessionPayload struct {
	ID string `json:"id"`
}

type envelope struct {
	Status struct {
		Code    int      `json:"code"`
		Message []string `json:"message"`
	} `json:"status"`
	Data json.RawMessage `json:"data"`
}

// doRequest performs an HTTP request and unwraps the response envelope.
func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("relay error %d: %s", resp.StatusCode, string(respBody))
	}
	if resp.StatusCode >= 400 {
		reason := ""
		if len(env.Status.Message) > 0 {
			reason = env.Status.Message[0]
		}
		return nil, fmt.Errorf("relay error %d: %s", resp.StatusCode, reason)
	}
	return env.Data, nil
}

// CreateSession mints a fresh session id on the server.
func (c *Client) CreateSession(ctx context.Context) (string, error) {
	data, err := c.doRequest(ctx, http.MethodPost, "/v1/api/sessions", nil)
	if err != nil {
		return "", err
	}
	var payload sessionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", err
	}
	return payload.ID, nil
}

// SendVisitorMessage submits a visitor message and returns the exchange.
func (c *Client) SendVisitorMessage(ctx context.Context, sessionID, text, contextText string) (*Exchange, error) {
	body, _ := json.Marshal(map[string]string{
		"session_id": sessionID,
		"text":       text,
		"context":    contextText,
	})
	data, err := c.doRequest(ctx, http.MethodPost, "/v1/api/messages/visitor", body)
	if err != nil {
		return nil, err
	}
	var exchange Exchange
	if err := json.Unmarshal(data, &exchange); err != nil {
		return nil, err
	}
	return &exchange, nil
}

// SendStaffMessage submits an operator reply into a session.
func (c *Client) SendStaffMessage(ctx context.Context, sessionID, text string) (*Message, error) {
	body, _ := json.Marshal(map[string]string{
		"session_id": sessionID,
		"text":       text,
	})
	data, err := c.doRequest(ctx, http.MethodPost, "/v1/api/messages/staff", body)
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListSessions retrieves the session directory snapshot.
func (c *Client) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/v1/api/sessions", nil)
	if err != nil {
		return nil, err
	}
	var rows []SessionSummary
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SessionMessages retrieves one session's full history in append order.
func (c *Client) SessionMessages(ctx context.Context, sessionID string) ([]Message, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/v1/api/sessions/"+sessionID+"/messages", nil)
	if err != nil {
		return nil, err
	}
	var rows []Message
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Health reports whether the server and its session store are reachable.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	return err
}
