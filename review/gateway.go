package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reviewkit/reviewkit/chunk"
	"github.com/reviewkit/reviewkit/cost"
	"github.com/reviewkit/reviewkit/llm"
	"github.com/reviewkit/reviewkit/tokens"
)

// Chatter is the chat capability the gateway dispatches through.
// *llm.Client satisfies it.
type Chatter interface {
	Chat(ctx context.Context, prompt, system string) (*llm.ChatResult, error)
	Model() string
}

// Gateway sits between review logic and the model: it counts tokens,
// splits prompts that exceed the model's context window, dispatches the
// resulting chunks, and records token spend.
type Gateway struct {
	client          Chatter
	splitter        *chunk.Splitter
	counter         tokens.Counter
	costs           *cost.Tracker
	maxPromptTokens int
	logger          *slog.Logger
}

// NewGateway creates a gateway around the given chat client. The token
// counter and splitter default to the estimator family so counting and
// splitting agree with each other.
func NewGateway(client Chatter) *Gateway {
	counter := tokens.NewCounterForModel(client.Model())
	return &Gateway{
		client:   client,
		splitter: chunk.NewSplitter().WithCounter(counter),
		counter:  counter,
		costs:    cost.NewTracker(),
		logger:   slog.Default(),
	}
}

// WithCounter sets the token counter, keeping the splitter in sync.
func (g *Gateway) WithCounter(counter tokens.Counter) *Gateway {
	if counter != nil {
		g.counter = counter
		g.splitter = g.splitter.WithCounter(counter)
	}
	return g
}

// WithSplitter replaces the prompt splitter.
func (g *Gateway) WithSplitter(splitter *chunk.Splitter) *Gateway {
	if splitter != nil {
		g.splitter = splitter
	}
	return g
}

// WithCosts sets the tracker that accumulates token spend.
func (g *Gateway) WithCosts(tracker *cost.Tracker) *Gateway {
	if tracker != nil {
		g.costs = tracker
	}
	return g
}

// WithMaxPromptTokens overrides the model's context window as the
// splitting threshold. Zero means use the model's known limit.
func (g *Gateway) WithMaxPromptTokens(limit int) *Gateway {
	if limit > 0 {
		g.maxPromptTokens = limit
	}
	return g
}

// WithLogger sets the logger for dispatch diagnostics.
func (g *Gateway) WithLogger(logger *slog.Logger) *Gateway {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// Costs returns the tracker accumulating token spend for this gateway.
func (g *Gateway) Costs() *cost.Tracker {
	return g.costs
}

// limit returns the token threshold above which prompts are split.
func (g *Gateway) limit() int {
	if g.maxPromptTokens > 0 {
		return g.maxPromptTokens
	}
	return tokens.ContextLimit(g.client.Model())
}

// Ask sends one review prompt, splitting it into sequential requests if
// it would overflow the model's context window. Responses from split
// dispatches are joined with blank lines in chunk order.
func (g *Gateway) Ask(ctx context.Context, prompt, system string) (string, error) {
	promptTokens := g.counter.Count(prompt)
	systemTokens := 0
	if system != "" {
		systemTokens = g.counter.Count(system)
	}
	total := promptTokens + systemTokens

	g.logger.Debug("dispatching review prompt",
		slog.Int("prompt_tokens", promptTokens),
		slog.Int("system_tokens", systemTokens),
		slog.Int("total_tokens", total))

	limit := g.limit()
	if total <= limit {
		return g.dispatch(ctx, prompt, system)
	}

	g.logger.Warn("prompt exceeds token limit, splitting",
		slog.Int("total_tokens", total),
		slog.Int("limit", limit))

	chunks := g.splitter.Split(prompt, limit, system)
	if len(chunks) == 0 {
		return "", fmt.Errorf("prompt cannot fit: system prompt consumes the entire %d token budget", limit)
	}

	responses := make([]string, 0, len(chunks))
	for n, piece := range chunks {
		g.logger.Debug("dispatching chunk",
			slog.Int("chunk", n+1),
			slog.Int("chunks", len(chunks)))

		text, err := g.dispatch(ctx, piece, system)
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d: %w", n+1, len(chunks), err)
		}
		responses = append(responses, text)
	}

	return strings.Join(responses, "\n\n"), nil
}

func (g *Gateway) dispatch(ctx context.Context, prompt, system string) (string, error) {
	result, err := g.client.Chat(ctx, prompt, system)
	if err != nil {
		return "", err
	}

	if result.Text == "" {
		g.logger.Warn("model returned an empty response",
			slog.Int("prompt_chars", len(prompt)))
	}

	report := g.costs.Record(g.client.Model(), result.Usage.PromptTokens, result.Usage.CompletionTokens)
	if result.Usage.TotalTokens > 0 {
		g.logger.Info(report.String())
	}
	return result.Text, nil
}
