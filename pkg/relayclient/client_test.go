package relayclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func writeEnvelope(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]interface{}{
		"status": map[string]interface{}{
			"code":    status,
			"message": []string{http.StatusText(status)},
		},
	}
	if data != nil {
		body["data"] = data
	}
	json.NewEncoder(w).Encode(body)
}

func TestCreateSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/api/sessions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeEnvelope(w, http.StatusOK, map[string]string{"id": "abc-123"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	id, err := client.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if id != "abc-123" {
		t.Errorf("expected session id abc-123, got %q", id)
	}
}

func TestSendVisitorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/api/messages/visitor" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req["session_id"] != "s1" || req["text"] != "hello" {
			t.Errorf("unexpected request body %v", req)
		}
		writeEnvelope(w, http.StatusOK, Exchange{
			StoredMessage: &Message{SessionID: "s1", Sender: "visitor", Content: "hello", Sequence: 0},
			ReplyMessage:  &Message{SessionID: "s1", Sender: "assistant", Content: "hi there", Sequence: 1},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	exchange, err := client.SendVisitorMessage(context.Background(), "s1", "hello", "")
	if err != nil {
		t.Fatalf("SendVisitorMessage returned error: %v", err)
	}
	if exchange.StoredMessage == nil || exchange.StoredMessage.Sequence != 0 {
		t.Errorf("unexpected stored message %+v", exchange.StoredMessage)
	}
	if exchange.ReplyMessage == nil || exchange.ReplyMessage.Content != "hi there" {
		t.Errorf("unexpected reply message %+v", exchange.ReplyMessage)
	}
	if exchange.ReplyUnavailable {
		t.Error("reply should be available")
	}
}

func TestSendStaffMessageNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, nil)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.SendStaffMessage(context.Background(), "missing", "hello?")
	if err == nil {
		t.Fatal("expected error for unknown session")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("expected status code in error, got %v", err)
	}
}

func TestSessionMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/api/sessions/s1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeEnvelope(w, http.StatusOK, []Message{
			{SessionID: "s1", Sender: "visitor", Content: "first", Sequence: 0},
			{SessionID: "s1", Sender: "staff", Content: "second", Sequence: 1},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	rows, err := client.SessionMessages(context.Background(), "s1")
	if err != nil {
		t.Fatalf("SessionMessages returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(rows))
	}
	for i, msg := range rows {
		if msg.Sequence != int64(i) {
			t.Errorf("message %d has sequence %d", i, msg.Sequence)
		}
	}
}

func TestHealth(t *testing.T) {
	healthy := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if healthy {
			writeEnvelope(w, http.StatusOK, "")
			return
		}
		writeEnvelope(w, http.StatusInternalServerError, nil)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.Health(context.Background()); err != nil {
		t.Errorf("healthy server reported error: %v", err)
	}
	healthy = false
	if err := client.Health(context.Background()); err == nil {
		t.Error("unhealthy server reported no error")
	}
}

func TestClientTimeoutsAreConfigured(t *testing.T) {
	client := NewClient("http://localhost:1")
	if client.HTTPClient.Timeout != 30*time.Second {
		t.Errorf("expected 30s default timeout, got %v", client.HTTPClient.Timeout)
	}
}
