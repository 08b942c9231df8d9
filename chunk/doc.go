// Package chunk splits oversized prompts into token-budgeted pieces.
//
// Review prompts for large changesets routinely exceed a model's context
// window. The Splitter divides such prompts into an ordered sequence of
// chunks that each fit under the budget, preferring file-section
// boundaries (lines starting with "# File:") over arbitrary line or
// character cuts.
//
// # Usage
//
//	splitter := chunk.NewSplitter().WithCounter(counter)
//	chunks := splitter.Split(prompt, 128000, systemPrompt)
//	if chunks == nil {
//	    // system prompt alone exceeds the budget; nothing can be sent
//	}
//	for _, c := range chunks {
//	    // dispatch c with systemPrompt prepended by the caller
//	}
//
// # Budget Arithmetic
//
// Each chunk is bounded by maxTokens minus the system prompt's token count
// minus a fixed reserve (default 100 tokens) kept as completion headroom.
// A prompt that already fits is returned unchanged as a single chunk.
//
// # Lossy Transformations
//
// Two documented transformations trade fidelity for deliverability:
//
//   - When a file section must be divided, its "# File:" header line is
//     repeated at the top of every subsequent piece, so concatenating the
//     chunks does not reproduce the original text byte-for-byte.
//   - A single line larger than the whole budget is force-split into
//     character slices sized by the chars-per-token ratio, without token
//     re-validation. Slice token counts may deviate slightly from the
//     budget; the slice size is derived directly from it.
package chunk
