// Package cost tracks token usage and estimated spend per model.
//
// The review gateway records every exchange's usage here and logs the
// per-exchange report; a run-level summary is available at shutdown:
//
//	tracker := cost.NewTracker()
//	report := tracker.Record("gpt-4o-mini", usage.PromptTokens, usage.CompletionTokens)
//	slog.Info(report.String())
//
//	for _, r := range tracker.Summary() {
//	    fmt.Println(r)
//	}
//
// Models without an entry in the pricing table still accumulate token
// counts; only their dollar estimate is zero.
package cost
