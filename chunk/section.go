package chunk

import "strings"

// splitSection divides one oversized file section into chunks. Once a
// boundary has been forced inside the section, the header line is seeded
// at the top of every subsequent chunk so each piece remains
// self-describing. Header bytes are duplicated relative to the source.
func (s *Splitter) splitSection(section string, available int) []string {
	lines := strings.Split(section, "\n")

	var header string
	if len(lines) > 0 && strings.HasPrefix(lines[0], SectionHeader) {
		header = lines[0]
	}
	headerTokens := s.counter.Count(header)

	var chunks []string
	var current []string
	currentTokens := 0
	split := false // a boundary has been forced inside the section

	// seed starts a fresh accumulator, re-emitting the header once the
	// section has been split.
	seed := func() {
		current = nil
		currentTokens = 0
		if header != "" && split {
			current = []string{header}
			currentTokens = headerTokens
		}
	}

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n"))
			split = true
		}
		seed()
	}

	for _, line := range lines {
		lineTokens := s.counter.Count(line)

		if currentTokens+lineTokens <= available {
			current = append(current, line)
			currentTokens += lineTokens
			continue
		}

		flush()

		if currentTokens+lineTokens <= available {
			current = append(current, line)
			currentTokens += lineTokens
			continue
		}

		// The line does not fit even in a fresh chunk: force-split it,
		// carrying the header on each slice.
		split = true
		parts := s.splitLine(line, available)
		if header != "" {
			for i := range parts {
				parts[i] = header + "\n" + parts[i]
			}
		}
		chunks = append(chunks, parts...)
		seed()
	}

	// Skip a trailing accumulator that holds nothing but the re-seeded header.
	if len(current) > 0 && !(split && len(current) == 1 && current[0] == header) {
		chunks = append(chunks, strings.Join(current, "\n"))
	}

	return chunks
}

// splitLine partitions a single oversized line into fixed-size character
// slices of available*charsPerToken runes. Slices are emitted verbatim
// without token re-validation; the size is derived directly from the
// budget, so slight deviation from the token budget is accepted.
func (s *Splitter) splitLine(line string, available int) []string {
	maxChars := available * s.charsPerToken
	if maxChars <= 0 {
		maxChars = s.charsPerToken
	}

	runes := []rune(line)
	chunks := make([]string, 0, (len(runes)+maxChars-1)/maxChars)

	for start := 0; start < len(runes); start += maxChars {
		end := start + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
