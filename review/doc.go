// Package review dispatches review prompts to a model and interprets
// the answers.
//
// The Gateway is the seam between review orchestration and the LLM
// backend. It counts tokens before sending, splits prompts that would
// overflow the model's context window into sequential requests, and
// records token spend on a cost.Tracker:
//
//	gateway := review.NewGateway(client)
//	answer, err := gateway.Ask(ctx, prompt, systemPrompt)
//
// Structured findings are parsed with ParseComments, which accepts
// both fenced JSON blocks and bare JSON arrays. ResponseSchema
// produces the schema to embed in the system prompt so models know
// the expected shape.
package review
