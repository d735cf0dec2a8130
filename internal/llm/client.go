// Package llm wraps an OpenAI-compatible chat-completions endpoint as a
// single blocking request/response call.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1"

// modelAliases maps the short model names accepted in config.json to the
// identifiers the API expects. Unknown aliases fall through to gpt-3.5-turbo.
var modelAliases = map[string]string{
	"gpt4":        "gpt-4",
	"gpt35_turbo": "gpt-3.5-turbo",
	"llama2_7b":   "llama2-7b",
	"llama2_13b":  "llama2-13b",
	"llama2_70b":  "llama2-70b",
	"mixtral_8x7b": "mixtral-8x7b",
}

// ResolveModel parses a model alias into the model identifier sent to the API.
func ResolveModel(alias string) string {
	if m, ok := modelAliases[strings.ToLower(alias)]; ok {
		return m
	}
	return "gpt-3.5-turbo"
}

// Client generates text via a chat-completions API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different OpenAI-compatible endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the given API key and model alias.
func New(apiKey, modelAlias string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		model:      ResolveModel(modelAlias),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one user prompt and returns the generated text. A provider
// failure is always an error, never an empty string.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("parse completion response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("completion error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// CleanJSON strips markdown fences some models wrap around JSON payloads.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
