// Package ai talks to the hosted chat-completion API and owns the prompts
// sent to it.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"

	// defaultTimeout matches the official SDK's default request timeout.
	defaultTimeout = 10 * time.Minute
)

// ErrNoContent is returned when the API answered but the first choice
// carries no message content.
var ErrNoContent = errors.New("completion has no content")

// CompletionRequest is one chat-style completion: a system instruction,
// a user prompt and sampling parameters.
type CompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer submits a completion request and returns the response text.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// APIError is a non-2xx answer from the completion API.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// OpenAIClient implements Completer with the Chat Completions API.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type ClientOption func(*OpenAIClient)

// WithBaseURL points the client at an OpenAI-compatible host.
func WithBaseURL(u string) ClientOption {
	return func(c *OpenAIClient) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *OpenAIClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New builds a client. An empty key is allowed; calls then fail upstream
// with an authentication error.
func New(apiKey string, opts ...ClientOption) *OpenAIClient {
	c := &OpenAIClient{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiErrorBody `json:"error,omitempty"`
}

type apiErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Complete sends a single request. There is no retry.
func (c *OpenAIClient) Complete(ctx context.Context, in CompletionRequest) (string, error) {
	body := chatRequest{
		Model: in.Model,
		Messages: []chatMessage{
			{Role: "system", Content: in.System},
			{Role: "user", Content: in.Prompt},
		},
		Temperature: in.Temperature,
		MaxTokens:   in.MaxTokens,
	}

	reqBytes, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out chatResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		if decodeErr == nil && out.Error != nil {
			apiErr.Type = out.Error.Type
			apiErr.Message = out.Error.Message
		}
		return "", apiErr
	}

	if decodeErr != nil {
		return "", fmt.Errorf("unmarshal response: %w", decodeErr)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == nil {
		return "", ErrNoContent
	}
	return *out.Choices[0].Message.Content, nil
}
