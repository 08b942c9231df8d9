package prompt

import (
	"fmt"
	"strings"
)

// FileHeader is the marker line that introduces one file's diff in an
// assembled prompt. The chunk package recognizes the same marker when
// splitting oversized prompts, so the two must stay in sync.
const FileHeader = "# File:"

// FileDiff is one changed file to be reviewed.
type FileDiff struct {
	Path string
	Diff string
}

// FormatFile renders a single file under its header line.
func FormatFile(diff FileDiff) string {
	return fmt.Sprintf("%s %s\n\n%s", FileHeader, diff.Path, diff.Diff)
}

// FormatFiles renders all files as consecutive sections.
func FormatFiles(diffs []FileDiff) string {
	sections := make([]string, 0, len(diffs))
	for _, d := range diffs {
		sections = append(sections, FormatFile(d))
	}
	return strings.Join(sections, "\n\n")
}

// ThreadComment is one message in an existing review discussion.
type ThreadComment struct {
	Author string
	Body   string
}

// Thread is an ongoing review discussion the model is asked to continue.
type Thread struct {
	Comments []ThreadComment
}

// FormatThread renders the conversation oldest-first.
func FormatThread(thread Thread) string {
	lines := make([]string, 0, len(thread.Comments))
	for _, c := range thread.Comments {
		lines = append(lines, fmt.Sprintf("%s: %s", c.Author, c.Body))
	}
	return strings.Join(lines, "\n")
}
