// Package retry provides an http.RoundTripper with bounded retry on
// transient failures.
//
// LLM backends sit behind proxies that intermittently answer 502/503/504
// or drop connections under load. Transport recovers from these locally
// with a fixed number of attempts and a fixed inter-attempt delay, so
// callers see either a usable response or one clearly distinguishable
// exhaustion error, never a raw mid-retry network failure.
//
// # Usage
//
//	client := &http.Client{
//	    Transport: retry.NewTransport(nil).
//	        WithMaxAttempts(5).
//	        WithDelay(500 * time.Millisecond),
//	}
//
// # Outcomes
//
// Four outcomes are possible from RoundTrip:
//
//   - A response with a non-retryable status: returned immediately.
//   - A non-retryable error (including context cancellation): propagated
//     immediately, unmodified.
//   - Attempts exhausted with a response observed on the final attempt:
//     that response is returned as-is. The transport does not escalate a
//     persistent 5xx into an error; callers inspect the status. This keeps
//     an alive-but-degraded backend (structured error bodies)
//     distinguishable from an unreachable one.
//   - Attempts exhausted and every attempt failed without a response:
//     an *ExhaustedError matching the ErrExhausted sentinel, carrying the
//     attempt count and target URL.
//
// # Concurrency
//
// Retry configuration is immutable after construction and attempt state
// is call-local, so one Transport may serve concurrent requests. The wait
// between attempts blocks only the calling goroutine and aborts promptly
// when the request context is cancelled.
//
// The retry count and delay are deliberately fixed rather than adaptive:
// this is a client library, not a distributed-systems backoff controller.
package retry
