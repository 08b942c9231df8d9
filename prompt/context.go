package prompt

import (
	"regexp"
	"strings"
)

// Context holds named values substituted into prompt text.
// Placeholders use the form <<name>>.
type Context map[string]string

// Apply replaces every <<name>> placeholder with its context value.
// Unknown placeholders are left untouched so they stay visible in
// saved prompts.
func (c Context) Apply(text string) string {
	for name, value := range c {
		text = strings.ReplaceAll(text, "<<"+name+">>", value)
	}
	return text
}

var (
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// Normalize tidies assembled prompt text: trailing whitespace is stripped
// from each line, runs of blank lines collapse to one, and outer
// whitespace is trimmed.
func Normalize(text string) string {
	text = trailingSpace.ReplaceAllString(text, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
