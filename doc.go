// Package reviewkit provides building blocks for LLM-assisted code review.
//
// reviewkit assembles natural-language review prompts, bounds them to a
// model's context window, and delivers them to an OpenAI-compatible
// chat-completions backend over a retry-hardened HTTP transport. Each
// subpackage can be used independently:
//
//   - tokens: token counting (tiktoken-backed with an estimating fallback)
//   - chunk: token-budgeted prompt splitting along "# File:" section boundaries
//   - retry: http.RoundTripper with bounded retry on transient failures
//   - llm: chat-completions client for LiteLLM-style backends
//   - prompt: review prompt assembly, loading, and live reload
//   - review: gateway tying chunking, dispatch, and cost tracking together
//   - cost: token usage and spend reporting
//   - config: YAML/TOML/env configuration
//
// # Quick Start
//
// Token counting:
//
//	import "github.com/reviewkit/reviewkit/tokens"
//	counter := tokens.NewCounterForModel("gpt-4o-mini")
//	count := counter.Count("Hello, World!")
//
// Splitting an oversized prompt:
//
//	import "github.com/reviewkit/reviewkit/chunk"
//	splitter := chunk.NewSplitter().WithCounter(counter)
//	chunks := splitter.Split(prompt, 128000, systemPrompt)
//
// Sending with retries:
//
//	import "github.com/reviewkit/reviewkit/llm"
//	client, _ := llm.NewClient(llm.Config{BaseURL: url, APIToken: token})
//	result, err := client.Chat(ctx, prompt, systemPrompt)
//
// # Design Philosophy
//
//   - Each package usable independently
//   - Interfaces for extensibility, concrete types for simplicity
//   - Explicitly injected dependencies, no hidden process-wide state
//   - Sensible defaults with full configurability
package reviewkit
