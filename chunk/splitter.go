package chunk

import (
	"log/slog"
	"strings"

	"github.com/reviewkit/reviewkit/tokens"
)

// DefaultReserve is the number of tokens held back from every chunk's
// budget as headroom for completion and formatting overhead.
const DefaultReserve = 100

// DefaultCharsPerToken is the character/token ratio used when force-splitting
// a single oversized line into fixed-size character slices.
const DefaultCharsPerToken = 4

// SectionHeader is the line prefix that begins a new file section.
// It is the only structural signal the splitter understands.
const SectionHeader = "# File:"

// Splitter divides an oversized prompt into chunks that each fit under a
// token budget, preferring file-section boundaries over arbitrary cuts.
//
// Splitter holds no mutable state across calls and is safe for concurrent
// use once configured.
type Splitter struct {
	counter       tokens.Counter
	reserve       int
	charsPerToken int
	logger        *slog.Logger
}

// NewSplitter creates a splitter with the default estimating counter.
func NewSplitter() *Splitter {
	return &Splitter{
		counter:       tokens.NewEstimatingCounter(),
		reserve:       DefaultReserve,
		charsPerToken: DefaultCharsPerToken,
		logger:        slog.Default(),
	}
}

// WithCounter sets a custom token counter.
func (s *Splitter) WithCounter(counter tokens.Counter) *Splitter {
	s.counter = counter
	return s
}

// WithReserve sets the completion headroom reserved from every chunk.
// Negative values are treated as zero.
func (s *Splitter) WithReserve(reserve int) *Splitter {
	if reserve < 0 {
		reserve = 0
	}
	s.reserve = reserve
	return s
}

// WithCharsPerToken sets the ratio used for force-splitting oversized lines.
// Values <= 0 keep the default.
func (s *Splitter) WithCharsPerToken(ratio int) *Splitter {
	if ratio > 0 {
		s.charsPerToken = ratio
	}
	return s
}

// WithLogger sets the logger used for split diagnostics.
func (s *Splitter) WithLogger(logger *slog.Logger) *Splitter {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Reserve returns the configured completion headroom.
func (s *Splitter) Reserve() int {
	return s.reserve
}

// Split divides prompt into an ordered sequence of chunks that each fit
// under maxTokens, after reserving room for systemPrompt and completion
// headroom. The system prompt itself is not included in the chunks; the
// caller prepends it when dispatching.
//
// A nil result signals that the system prompt reservation alone exceeds
// the budget and no content can be sent. Callers must check for this.
//
// Sections introduced by a "# File:" header line are kept whole when they
// fit. When a section must be divided, its header line is re-emitted at
// the top of every subsequent piece so each piece stays self-describing;
// concatenating chunks therefore does not always reproduce the original
// text. Single lines that exceed the budget on their own are force-split
// into character slices sized from the budget without token re-validation.
func (s *Splitter) Split(prompt string, maxTokens int, systemPrompt string) []string {
	systemTokens := 0
	if systemPrompt != "" {
		systemTokens = s.counter.Count(systemPrompt)
	}
	available := maxTokens - systemTokens - s.reserve

	if available <= 0 {
		s.logger.Warn("system prompt exceeds token budget, returning no chunks",
			slog.Int("max_tokens", maxTokens),
			slog.Int("system_tokens", systemTokens),
			slog.Int("reserve", s.reserve))
		return nil
	}

	// Whole prompt fits: identity chunk, no transformation.
	if s.counter.Count(prompt) <= available {
		return []string{prompt}
	}

	var chunks []string
	var current []string
	currentTokens := 0

	lines := strings.Split(prompt, "\n")
	i := 0

	for i < len(lines) {
		line := lines[i]

		if strings.HasPrefix(line, SectionHeader) {
			if len(current) > 0 {
				chunks = append(chunks, strings.Join(current, "\n"))
				current = nil
				currentTokens = 0
			}

			// Collect the entire file section.
			section := []string{line}
			i++
			for i < len(lines) && !strings.HasPrefix(lines[i], SectionHeader) {
				section = append(section, lines[i])
				i++
			}

			text := strings.Join(section, "\n")
			if sectionTokens := s.counter.Count(text); sectionTokens <= available {
				chunks = append(chunks, text)
			} else {
				s.logger.Warn("file section exceeds budget, splitting further",
					slog.Int("section_tokens", sectionTokens),
					slog.Int("available", available))
				chunks = append(chunks, s.splitSection(text, available)...)
			}
			continue
		}

		lineTokens := s.counter.Count(line)
		switch {
		case currentTokens+lineTokens <= available:
			current = append(current, line)
			currentTokens += lineTokens
			i++
		case len(current) > 0:
			// Flush and retry the line against a fresh chunk.
			chunks = append(chunks, strings.Join(current, "\n"))
			current = nil
			currentTokens = 0
		default:
			s.logger.Warn("line exceeds budget, force-splitting",
				slog.Int("line_tokens", lineTokens),
				slog.Int("available", available))
			chunks = append(chunks, s.splitLine(line, available)...)
			i++
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n"))
	}

	return chunks
}
