// Package prompt assembles review prompts from parts, diffs, and
// discussion threads.
//
// Prompt parts live in files (or behind URLs) so teams can tune review
// instructions without rebuilding. The Builder joins loaded parts,
// substitutes <<name>> placeholders from a Context, normalizes
// whitespace, and appends the material under review:
//
//	loader := prompt.NewLoader()
//	parts, err := loader.Load(ctx, []string{"prompts/summary.md"})
//
//	builder := prompt.NewBuilder().WithContext(prompt.Context{"language": "Go"})
//	text := builder.SummaryRequest(parts, diffs)
//
// Each changed file is rendered under a "# File: <path>" header. That
// marker is the structural signal the chunk package uses when an
// assembled prompt must be split, so oversized prompts break along file
// boundaries.
//
// For long-running daemons, Watcher reloads prompt files on edit:
//
//	watcher, err := prompt.NewWatcher(paths)
//	for change := range watcher.Watch(ctx) {
//	    // swap the stored part for change.Path
//	}
package prompt
