package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/reviewkit/reviewkit/retry"
)

// maxErrorBodyBytes caps how much of an error response body is captured
// for diagnostics.
const maxErrorBodyBytes = 8 << 10

// ChatResult is the distilled outcome of one chat exchange.
type ChatResult struct {
	Text  string
	Usage Usage
}

// APIError is a terminal non-2xx answer from the backend. The retry
// transport has already spent its attempts by the time this surfaces.
type APIError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("chat API returned status %d: %s", e.Status, body)
}

// Client talks to an OpenAI-compatible /chat/completions backend.
// Safe for concurrent use.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger for request diagnostics and retry warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the HTTP client entirely, bypassing the
// default retry transport wiring. Intended for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// NewClient creates a chat client with the retry transport installed.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("llm config: %w", err)
	}

	c := &Client{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		transport := retry.NewTransport(nil).WithLogger(c.logger)
		if cfg.MaxAttempts > 0 {
			transport = transport.WithMaxAttempts(cfg.MaxAttempts)
		}
		if cfg.RetryDelay != 0 {
			delay := cfg.RetryDelay
			if delay < 0 {
				delay = 0
			}
			transport = transport.WithDelay(delay)
		}
		c.http = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		}
	}

	return c, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Chat sends one prompt/system-prompt pair and returns the first
// completion. A terminal non-2xx status comes back as *APIError;
// transport exhaustion without any response surfaces the retry
// package's exhaustion error.
func (c *Client) Chat(ctx context.Context, prompt, system string) (*ChatResult, error) {
	request := ChatRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}
	if system != "" {
		request.Messages = append(request.Messages, Message{Role: RoleSystem, Content: system})
	}
	request.Messages = append(request.Messages, Message{Role: RoleUser, Content: prompt})

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}

	c.logger.Debug("sending chat request",
		slog.String("model", c.cfg.Model),
		slog.Int("prompt_bytes", len(prompt)),
		slog.Int("system_bytes", len(system)))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var parsed ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}

	c.logger.Debug("chat response received",
		slog.Int("total_tokens", parsed.Usage.TotalTokens),
		slog.Int("completion_tokens", parsed.Usage.CompletionTokens))

	return &ChatResult{
		Text:  parsed.FirstText(),
		Usage: parsed.Usage,
	}, nil
}
