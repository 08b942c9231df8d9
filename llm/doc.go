// Package llm provides a chat-completions client for LiteLLM-style
// OpenAI-compatible backends.
//
// The client wraps net/http with the retry transport from
// github.com/reviewkit/reviewkit/retry, so transient 5xx answers and
// network hiccups are absorbed before any error reaches the caller.
//
// # Usage
//
//	client, err := llm.NewClient(llm.Config{
//	    BaseURL:  "https://litellm.internal.example",
//	    APIToken: token,
//	    Model:    "gpt-4o-mini",
//	})
//	if err != nil {
//	    return err
//	}
//	result, err := client.Chat(ctx, prompt, systemPrompt)
//
// # Error Surface
//
// Chat returns one of:
//
//   - *ChatResult on a 2xx answer (Text may be empty if the backend
//     returned no choices; the caller decides whether that is a problem)
//   - *APIError for a terminal non-2xx status, after retries
//   - the retry package's exhaustion error when no response was ever
//     observed, or a context error on cancellation
package llm
