package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"support-relay/configs"
	"support-relay/internal/domain"
	"support-relay/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure OpenAIClientAdapter implements ReplyGenerator interface
var _ output.ReplyGenerator = (*OpenAIClientAdapter)(nil)

// OpenAIClientAdapter struct - Output adapter for an OpenAI-compatible
// chat-completions API, used as the relay's reply generator.
type OpenAIClientAdapter struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	model          string
	defaultContext string
	timeout        time.Duration
}

// NewOpenAIClientAdapter func - Creates new reply generator adapter
func NewOpenAIClientAdapter(config configs.Generator) (*OpenAIClientAdapter, error) {
	if config.APIKey == "" {
		return nil, errors.New("generator api key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	model := config.Model
	if model == "" {
		model = "gpt-3.5-turbo"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   15 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	adapter := &OpenAIClientAdapter{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         config.APIKey,
		model:          model,
		defaultContext: config.DefaultContext,
		timeout:        timeout,
	}

	logrus.Infof("Reply generator initialized with base URL: %s, model: %s, timeout: %v", baseURL, model, timeout)

	return adapter, nil
}

// Retry configuration constants
const (
	maxRetryAttempts  = 3
	initialDelay      = 1 * time.Second
	maxDelay          = 8 * time.Second
	backoffMultiplier = 2
)

// retryWithBackoff executes an operation with exponential backoff retry logic
func (a *OpenAIClientAdapter) retryWithBackoff(ctx context.Context, operation func() (*http.Response, error)) (*http.Response, error) {
	var lastErr error
	delay := initialDelay

	for attempt := 1; attempt <= maxRetryAttempts; attempt++ {
		resp, err := operation()

		if err != nil {
			if !a.isTransientError(err, 0) {
				return nil, err
			}
			lastErr = err
			logrus.Warnf("Generator request attempt %d/%d failed with error: %v, retrying in %v", attempt, maxRetryAttempts, err, delay)
		} else if resp != nil {
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return resp, nil
			}

			// Don't retry on 4xx client errors
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				body, _ := io.ReadAll(resp.Body)
				resp.Body.Close()
				return nil, fmt.Errorf("%w: status %d - %s", domain.ErrInvalidRequest, resp.StatusCode, string(body))
			}

			if a.isTransientError(nil, resp.StatusCode) {
				body, _ := io.ReadAll(resp.Body)
				resp.Body.Close()
				lastErr = fmt.Errorf("server error: status %d - %s", resp.StatusCode, string(body))
				logrus.Warnf("Generator request attempt %d/%d failed with status %d, retrying in %v", attempt, maxRetryAttempts, resp.StatusCode, delay)
			} else {
				return resp, nil
			}
		}

		if attempt < maxRetryAttempts {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}

			delay = delay * backoffMultiplier
			if delay > maxDelay {
				delay = maxDelay
			}
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v after %d attempts", domain.ErrGeneratorUnavailable, lastErr, maxRetryAttempts)
	}
	return nil, fmt.Errorf("%w: max retries exceeded", domain.ErrGeneratorUnavailable)
}

// isTransientError determines if an error or status code is transient and should be retried
func (a *OpenAIClientAdapter) isTransientError(err error, statusCode int) bool {
	if statusCode >= 500 && statusCode < 600 {
		return true
	}
	if statusCode >= 400 && statusCode < 500 {
		return false
	}
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"eof",
	}
	for _, pattern := range transientPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}

// Generate sends the visitor's text with the page context as system prompt
// and returns the generated reply.
func (a *OpenAIClientAdapter) Generate(ctx context.Context, text, contextText string) (string, error) {
	if contextText == "" {
		contextText = a.defaultContext
	}

	reqBody := chatCompletionAPIRequest{
		Model: a.model,
		Messages: []chatMessageAPI{
			{Role: "system", Content: contextText},
			{Role: "user", Content: text},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generator request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", a.baseURL)

	resp, err := a.retryWithBackoff(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
		return a.httpClient.Do(req)
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var apiResp chatCompletionAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("%w: failed to parse generator response: %v", domain.ErrGeneratorUnavailable, err)
	}

	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in generator response", domain.ErrGeneratorUnavailable)
	}

	reply := strings.TrimSpace(apiResp.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("%w: empty generator reply", domain.ErrGeneratorUnavailable)
	}

	logrus.Infof("Reply generated, model: %s, tokens: %d", apiResp.Model, apiResp.Usage.TotalTokens)

	return reply, nil
}

// API request/response structures for the OpenAI-compatible API

// chatMessageAPI represents a message in the API request
type chatMessageAPI struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionAPIRequest represents the request body for chat completions
type chatCompletionAPIRequest struct {
	Model    string           `json:"model"`
	Messages []chatMessageAPI `json:"messages"`
}

// chatCompletionAPIResponse represents the response from chat completions
type chatCompletionAPIResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}
