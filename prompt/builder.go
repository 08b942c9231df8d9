package prompt

import "strings"

// Builder assembles review request prompts from loaded prompt parts,
// applying context substitution and normalization.
type Builder struct {
	context   Context
	normalize bool
}

// NewBuilder creates a builder that normalizes output by default.
func NewBuilder() *Builder {
	return &Builder{normalize: true}
}

// WithContext sets the substitution context.
func (b *Builder) WithContext(ctx Context) *Builder {
	b.context = ctx
	return b
}

// WithNormalize toggles prompt normalization.
func (b *Builder) WithNormalize(normalize bool) *Builder {
	b.normalize = normalize
	return b
}

// Prepare joins prompt parts with blank lines, applies the context, and
// normalizes the result. System prompts go through Prepare unchanged in
// structure; request builders below append the material to review.
func (b *Builder) Prepare(parts []string) string {
	text := strings.Join(parts, "\n\n")
	text = b.context.Apply(text)
	if b.normalize {
		text = Normalize(text)
	}
	return text
}

// InlineRequest builds a prompt asking for line comments on one file.
func (b *Builder) InlineRequest(parts []string, diff FileDiff) string {
	return b.Prepare(parts) + "\n\n## Diff\n\n" + FormatFile(diff)
}

// SummaryRequest builds a prompt asking for a changeset summary review.
func (b *Builder) SummaryRequest(parts []string, diffs []FileDiff) string {
	return b.Prepare(parts) + "\n\n## Changes\n\n" + FormatFiles(diffs) + "\n"
}

// ContextRequest builds a prompt supplying the full change context.
func (b *Builder) ContextRequest(parts []string, diffs []FileDiff) string {
	return b.Prepare(parts) + "\n\n## Diff\n\n" + FormatFiles(diffs) + "\n"
}

// InlineReplyRequest builds a prompt continuing a discussion on one file.
func (b *Builder) InlineReplyRequest(parts []string, diff FileDiff, thread Thread) string {
	return b.Prepare(parts) +
		"\n\n## Conversation\n\n" + FormatThread(thread) +
		"\n\n## Diff\n\n" + FormatFile(diff)
}

// SummaryReplyRequest builds a prompt continuing a changeset-level discussion.
func (b *Builder) SummaryReplyRequest(parts []string, diffs []FileDiff, thread Thread) string {
	return b.Prepare(parts) +
		"\n\n## Conversation\n\n" + FormatThread(thread) +
		"\n\n## Changes\n\n" + FormatFiles(diffs)
}
