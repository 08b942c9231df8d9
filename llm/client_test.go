package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatResponse(text string, usage Usage) ChatResponse {
	return ChatResponse{
		Usage:   usage,
		Choices: []Choice{{Message: Message{Role: RoleAssistant, Content: text}}},
	}
}

func TestClient_Chat(t *testing.T) {
	var got ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("  Looks good to me.  ", Usage{
			TotalTokens:      120,
			PromptTokens:     100,
			CompletionTokens: 20,
		}))
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL:     server.URL,
		APIToken:    "secret-token",
		Model:       "gpt-4o-mini",
		MaxTokens:   1200,
		Temperature: 0.3,
	})
	require.NoError(t, err)

	result, err := client.Chat(context.Background(), "review this diff", "you are a reviewer")
	require.NoError(t, err)

	assert.Equal(t, "Looks good to me.", result.Text, "text should be trimmed")
	assert.Equal(t, 120, result.Usage.TotalTokens)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, RoleSystem, got.Messages[0].Role)
	assert.Equal(t, "you are a reviewer", got.Messages[0].Content)
	assert.Equal(t, RoleUser, got.Messages[1].Role)
	assert.Equal(t, "review this diff", got.Messages[1].Content)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, 1200, got.MaxTokens)
}

func TestClient_Chat_NoSystemPrompt(t *testing.T) {
	var got ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(chatResponse("ok", Usage{}))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Chat(context.Background(), "prompt only", "")
	require.NoError(t, err)

	require.Len(t, got.Messages, 1)
	assert.Equal(t, RoleUser, got.Messages[0].Role)
}

func TestClient_Chat_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid model"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Chat(context.Background(), "prompt", "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Body, "invalid model")
}

func TestClient_Chat_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(chatResponse("recovered", Usage{TotalTokens: 5}))
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL:    server.URL,
		RetryDelay: -1, // no delay in tests
	})
	require.NoError(t, err)

	result, err := client.Chat(context.Background(), "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, "recovered", result.Text)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Chat_PersistentServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "still broken", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL:     server.URL,
		MaxAttempts: 3,
		RetryDelay:  -1,
	})
	require.NoError(t, err)

	_, err = client.Chat(context.Background(), "prompt", "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr, "exhaustion with a response surfaces as an API error, not a transport error")
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Contains(t, apiErr.Body, "still broken")
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Chat_Cancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Chat(ctx, "prompt", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "expected context cancellation, got: %v", err)
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err, "base_url is required")
}

func TestChatResponse_FirstText(t *testing.T) {
	tests := []struct {
		name     string
		response ChatResponse
		expected string
	}{
		{"no choices", ChatResponse{}, ""},
		{
			"trims whitespace",
			ChatResponse{Choices: []Choice{{Message: Message{Content: "\n  hi  \n"}}}},
			"hi",
		},
		{
			"first of several",
			ChatResponse{Choices: []Choice{
				{Message: Message{Content: "first"}},
				{Message: Message{Content: "second"}},
			}},
			"first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.response.FirstText())
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{BaseURL: "http://x"}.WithDefaults()
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)

	cfg = Config{BaseURL: "http://x", Model: "custom", Timeout: 5}.WithDefaults()
	assert.Equal(t, "custom", cfg.Model)
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("REVIEWKIT_LLM_BASE_URL", "https://env.example")
	t.Setenv("REVIEWKIT_LLM_MODEL", "env-model")
	t.Setenv("REVIEWKIT_LLM_MAX_TOKENS", "2048")
	t.Setenv("REVIEWKIT_LLM_TIMEOUT", "90s")

	var cfg Config
	cfg.LoadFromEnv()

	assert.Equal(t, "https://env.example", cfg.BaseURL)
	assert.Equal(t, "env-model", cfg.Model)
	assert.Equal(t, 2048, cfg.MaxTokens)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}
