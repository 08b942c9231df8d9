// Package tokens provides token counting for LLM prompt budgeting.
//
// Two counter implementations are available behind the Counter interface.
// TiktokenCounter counts exactly using a BPE encoding; EstimatingCounter
// approximates using the rule-of-thumb that ~4 characters equals 1 token
// for English text.
//
// # Choosing a Counter
//
// NewCounterForModel picks the best available counter for a model, falling
// back to estimation when the encoding cannot be initialized:
//
//	counter := tokens.NewCounterForModel("gpt-4o-mini")
//	count := counter.Count("Hello, world!")
//	fits := counter.FitsInLimit("text", 1000)
//
// The fallback decision is made once at construction so that Count stays
// deterministic and side-effect-free; pass the counter to whatever needs
// it rather than relying on a process-wide default.
//
// For one-off estimation:
//
//	count := tokens.EstimateTokens("Hello, world!")
//
// # Model Limits
//
// Get context window sizes for common models:
//
//	limit := tokens.ContextLimit("gpt-4o-mini")  // 128000
//	limit := tokens.ContextLimit("unknown")      // 100000 (default)
package tokens
