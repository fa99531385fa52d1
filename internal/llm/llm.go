package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sentinel errors for LLM calls. Wrap with context at the call site using
// fmt.Errorf so errors.Is() keeps working.
var (
	// ErrNoAPIKey indicates no provider credential is configured.
	ErrNoAPIKey = errors.New("no API key configured")

	// ErrUnreachable indicates a transport-level failure before any
	// response was received.
	ErrUnreachable = errors.New("provider unreachable")

	// ErrEmptyResponse indicates the provider replied without usable text.
	ErrEmptyResponse = errors.New("empty response from provider")
)

// UpstreamError is a non-success provider response. Status and body are
// retained so callers can report exactly what the provider said.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("provider returned %d: %s", e.Status, e.Body)
}

// MalformedResponseError indicates a response was received but its text did
// not match the expected JSON shape. Raw carries the full response body for
// diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %v. Raw response: %s", e.Err, e.Raw)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Client is the single-call LLM abstraction. One invocation performs exactly
// one request/response exchange; there is no retry or caching at this layer.
type Client interface {
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
}

// AnthropicClient calls the Anthropic Messages API.
type AnthropicClient struct {
	Model   string
	BaseURL string
	APIKey  string
	client  *http.Client
}

// NewAnthropicClient creates a client for the given model and key.
func NewAnthropicClient(model, baseURL, apiKey string) *AnthropicClient {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	return &AnthropicClient{
		Model:   model,
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// IsConfigured reports whether a credential is present.
func (a *AnthropicClient) IsConfigured() bool {
	return a.APIKey != ""
}

// Complete sends one message exchange and returns the response text.
func (a *AnthropicClient) Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	if a.APIKey == "" {
		return "", ErrNoAPIKey
	}

	body := map[string]any{
		"model":       a.Model,
		"max_tokens":  maxTokens,
		"temperature": temperature,
		"system":      system,
		"messages": []map[string]string{
			{"role": "user", "content": user},
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.BaseURL+"/v1/messages", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", &UpstreamError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Content) == 0 || result.Content[0].Text == "" {
		return "", ErrEmptyResponse
	}

	return result.Content[0].Text, nil
}
