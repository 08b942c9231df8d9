package review

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/invopop/jsonschema"
)

// Severity grades how strongly a comment should be surfaced.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Comment is one structured review finding returned by the model.
type Comment struct {
	File       string   `json:"file" jsonschema:"description=Path of the file the comment applies to"`
	Line       int      `json:"line,omitempty" jsonschema:"description=Line number in the new version of the file"`
	Severity   Severity `json:"severity" jsonschema:"enum=info,enum=warning,enum=critical"`
	Message    string   `json:"message" jsonschema:"description=The review finding"`
	Suggestion string   `json:"suggestion,omitempty" jsonschema:"description=Optional replacement code"`
}

// ResponseSchema returns the JSON schema the model is asked to follow
// when emitting comments. Embedding the schema in the system prompt
// keeps responses parseable without provider-specific structured output.
func ResponseSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(&Comment{})
	return json.MarshalIndent(schema, "", "  ")
}

var codeBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*\\n(.*?)```")

// ParseComments extracts review comments from a model response. JSON
// arrays inside fenced code blocks are tried first; if none parse, the
// whole response is tried as a bare array. Responses with no parseable
// comments yield an empty slice, not an error, since free-text answers
// are a valid outcome for discussion prompts.
func ParseComments(response string) []Comment {
	for _, match := range codeBlockRegex.FindAllStringSubmatch(response, -1) {
		if comments, ok := tryParse(match[1]); ok {
			return comments
		}
	}

	if comments, ok := tryParse(response); ok {
		return comments
	}
	return nil
}

func tryParse(text string) ([]Comment, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "[") {
		return nil, false
	}

	var comments []Comment
	if err := json.Unmarshal([]byte(text), &comments); err != nil {
		return nil, false
	}
	return comments, true
}
