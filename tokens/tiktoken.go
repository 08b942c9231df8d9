package tokens

import (
	"fmt"
	"log/slog"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the BPE encoding used when a model has no known
// encoding of its own. cl100k_base is the GPT-4 family encoding and a
// reasonable approximation for Claude, Gemini, and Llama models.
const DefaultEncoding = "cl100k_base"

// TiktokenCounter counts tokens exactly using a BPE encoding.
type TiktokenCounter struct {
	encoding string
	enc      *tiktoken.Tiktoken
}

// NewTiktokenCounter creates a counter for the given encoding name
// (e.g. "cl100k_base", "o200k_base").
func NewTiktokenCounter(encoding string) (*TiktokenCounter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("get encoding %q: %w", encoding, err)
	}
	return &TiktokenCounter{encoding: encoding, enc: enc}, nil
}

// NewTiktokenCounterForModel creates a counter using the model's own
// encoding, falling back to DefaultEncoding for unrecognized models.
func NewTiktokenCounterForModel(model string) (*TiktokenCounter, error) {
	return NewTiktokenCounter(encodingName(model))
}

// encodingName resolves a model name to its BPE encoding name.
func encodingName(model string) string {
	if name, ok := tiktoken.MODEL_TO_ENCODING[model]; ok {
		return name
	}
	for prefix, name := range tiktoken.MODEL_PREFIX_TO_ENCODING {
		if strings.HasPrefix(model, prefix) {
			return name
		}
	}
	return DefaultEncoding
}

// Encoding returns the encoding name this counter was built with.
func (c *TiktokenCounter) Encoding() string {
	return c.encoding
}

// Count returns the exact number of tokens in the given text.
func (c *TiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

// FitsInLimit returns true if the text fits within the token limit.
func (c *TiktokenCounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}

// NewCounterForModel returns the best available counter for a model:
// the exact tiktoken counter when its encoding can be initialized, the
// estimating counter otherwise. The choice is made once here, so the
// returned Counter is side-effect-free and deterministic per call.
func NewCounterForModel(model string) Counter {
	counter, err := NewTiktokenCounterForModel(model)
	if err != nil {
		slog.Warn("tiktoken unavailable, using estimating counter",
			slog.String("model", model),
			slog.String("error", err.Error()))
		return NewEstimatingCounter()
	}
	return counter
}
