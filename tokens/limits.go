package tokens

// ModelLimits contains context window sizes for common review backends.
var ModelLimits = map[string]int{
	// OpenAI models
	"gpt-4o":      128000,
	"gpt-4o-mini": 128000,
	"gpt-4-turbo": 128000,
	"gpt-4":       8192,
	"o3-mini":     200000,

	// Claude models
	"claude-opus-4":     200000,
	"claude-sonnet-4":   200000,
	"claude-3.5-sonnet": 200000,
	"claude-3.5-haiku":  200000,

	// Gemini models
	"gemini-2.5-pro":   1048576,
	"gemini-2.0-flash": 1048576,

	// Llama models (typical serving configuration)
	"llama-3.1-70b": 128000,
	"llama-3.1-8b":  128000,

	// Default fallback
	"default": 100000,
}

// ContextLimit returns the context window for a model, or a conservative
// default if the model is not in the table.
func ContextLimit(model string) int {
	if limit, ok := ModelLimits[model]; ok {
		return limit
	}
	return ModelLimits["default"]
}
