package cost

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Usage tracks token consumption for one model.
type Usage struct {
	InputTokens  int
	OutputTokens int
	Requests     int
}

// Add adds the given usage to this usage.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.Requests += other.Requests
}

// TotalTokens returns the total tokens used.
func (u Usage) TotalTokens() int {
	return u.InputTokens + u.OutputTokens
}

// Pricing holds per-million-token pricing for a model.
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// DefaultPrices contains pricing for common review backends (as of 2025).
// Models not listed here track usage but report zero cost.
var DefaultPrices = map[string]Pricing{
	"gpt-4o":            {InputPerMillion: 2.5, OutputPerMillion: 10.0},
	"gpt-4o-mini":       {InputPerMillion: 0.15, OutputPerMillion: 0.6},
	"o3-mini":           {InputPerMillion: 1.1, OutputPerMillion: 4.4},
	"claude-opus-4":     {InputPerMillion: 15.0, OutputPerMillion: 75.0},
	"claude-sonnet-4":   {InputPerMillion: 3.0, OutputPerMillion: 15.0},
	"claude-3.5-haiku":  {InputPerMillion: 0.8, OutputPerMillion: 4.0},
	"gemini-2.5-pro":    {InputPerMillion: 1.25, OutputPerMillion: 10.0},
	"gemini-2.0-flash":  {InputPerMillion: 0.1, OutputPerMillion: 0.4},
}

// Tracker accumulates token usage and estimated spend across models.
// Safe for concurrent use.
type Tracker struct {
	mu     sync.RWMutex
	totals map[string]Usage
	prices map[string]Pricing
}

// NewTracker creates a tracker with the default pricing table.
func NewTracker() *Tracker {
	return &Tracker{
		totals: make(map[string]Usage),
		prices: DefaultPrices,
	}
}

// WithPrices replaces the pricing table.
func (t *Tracker) WithPrices(prices map[string]Pricing) *Tracker {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prices = prices
	return t
}

// Record adds one exchange's token usage for the given model and returns
// the report for that exchange.
func (t *Tracker) Record(model string, input, output int) Report {
	t.mu.Lock()
	defer t.mu.Unlock()

	u := t.totals[model]
	u.InputTokens += input
	u.OutputTokens += output
	u.Requests++
	t.totals[model] = u

	return Report{
		Model:        model,
		InputTokens:  input,
		OutputTokens: output,
		CostUSD:      t.costLocked(model, input, output),
	}
}

// Usage returns the accumulated usage for a specific model.
func (t *Tracker) Usage(model string) Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totals[model]
}

// TotalUsage returns aggregated usage across all models.
func (t *Tracker) TotalUsage() Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var total Usage
	for _, u := range t.totals {
		total.Add(u)
	}
	return total
}

// EstimatedCost calculates the accumulated spend based on the pricing table.
func (t *Tracker) EstimatedCost() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var total float64
	for model, usage := range t.totals {
		total += t.costLocked(model, usage.InputTokens, usage.OutputTokens)
	}
	return total
}

// Summary returns a report per model, sorted by model name.
func (t *Tracker) Summary() []Report {
	t.mu.RLock()
	defer t.mu.RUnlock()

	reports := make([]Report, 0, len(t.totals))
	for model, usage := range t.totals {
		reports = append(reports, Report{
			Model:        model,
			InputTokens:  usage.InputTokens,
			OutputTokens: usage.OutputTokens,
			Requests:     usage.Requests,
			CostUSD:      t.costLocked(model, usage.InputTokens, usage.OutputTokens),
		})
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Model < reports[j].Model })
	return reports
}

// Reset clears all tracked usage.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totals = make(map[string]Usage)
}

func (t *Tracker) costLocked(model string, input, output int) float64 {
	prices, ok := t.prices[model]
	if !ok {
		return 0
	}
	inputCost := float64(input) / 1_000_000 * prices.InputPerMillion
	outputCost := float64(output) / 1_000_000 * prices.OutputPerMillion
	return inputCost + outputCost
}

// Report describes usage and spend for one exchange or one model total.
type Report struct {
	Model        string
	InputTokens  int
	OutputTokens int
	Requests     int
	CostUSD      float64
}

// String renders the report for log output.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "model=%s input=%d output=%d", r.Model, r.InputTokens, r.OutputTokens)
	if r.Requests > 0 {
		fmt.Fprintf(&b, " requests=%d", r.Requests)
	}
	if r.CostUSD > 0 {
		fmt.Fprintf(&b, " cost=$%.4f", r.CostUSD)
	}
	return b.String()
}
