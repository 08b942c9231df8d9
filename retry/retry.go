package retry

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultMaxAttempts is the default number of attempts per request.
const DefaultMaxAttempts = 5

// DefaultDelay is the default fixed wait between attempts.
const DefaultDelay = 500 * time.Millisecond

// DefaultRetryStatuses are the status codes retried by default.
var DefaultRetryStatuses = []int{
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// Transport is an http.RoundTripper that retries transient failures with a
// fixed delay. A response with a non-retryable status is returned as-is;
// callers inspect the status themselves. A persistent retryable status is
// also returned as-is after the final attempt, so a degraded backend that
// still answers is distinguishable from one that is unreachable, which
// yields an *ExhaustedError instead.
//
// Retry configuration is fixed at construction. Attempt state is local to
// each RoundTrip call, so a single Transport is safe for concurrent use.
type Transport struct {
	next        http.RoundTripper
	maxAttempts int
	delay       time.Duration
	statuses    map[int]struct{}
	logger      *slog.Logger
}

// NewTransport creates a retrying transport around next.
// A nil next uses http.DefaultTransport.
func NewTransport(next http.RoundTripper) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	t := &Transport{
		next:        next,
		maxAttempts: DefaultMaxAttempts,
		delay:       DefaultDelay,
		statuses:    make(map[int]struct{}, len(DefaultRetryStatuses)),
		logger:      slog.Default(),
	}
	for _, code := range DefaultRetryStatuses {
		t.statuses[code] = struct{}{}
	}
	return t
}

// WithMaxAttempts sets the attempt budget. Values < 1 are treated as 1.
func (t *Transport) WithMaxAttempts(n int) *Transport {
	if n < 1 {
		n = 1
	}
	t.maxAttempts = n
	return t
}

// WithDelay sets the fixed wait between attempts.
// Negative values are treated as zero.
func (t *Transport) WithDelay(d time.Duration) *Transport {
	if d < 0 {
		d = 0
	}
	t.delay = d
	return t
}

// WithStatuses replaces the set of retryable status codes.
func (t *Transport) WithStatuses(codes ...int) *Transport {
	t.statuses = make(map[int]struct{}, len(codes))
	for _, code := range codes {
		t.statuses[code] = struct{}{}
	}
	return t
}

// WithLogger sets the logger for retry diagnostics.
func (t *Transport) WithLogger(logger *slog.Logger) *Transport {
	if logger != nil {
		t.logger = logger
	}
	return t
}

// MaxAttempts returns the configured attempt budget.
func (t *Transport) MaxAttempts() int {
	return t.maxAttempts
}

// RoundTrip sends the request, retrying on retryable statuses and
// retryable network errors. Non-retryable errors propagate immediately.
// Cancellation of the request context aborts both the in-flight attempt
// and any pending inter-attempt wait; no attempt follows it.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// A consumed body can only be replayed through GetBody. Without it,
	// retrying would resend an empty body, so fall through to one attempt.
	if req.Body != nil && req.GetBody == nil {
		return t.next.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request; body replay
	// happens on a clone.
	req = req.Clone(req.Context())

	var lastResp *http.Response

	for attempt := 1; attempt <= t.maxAttempts; attempt++ {
		if attempt > 1 && req.Body != nil {
			body, err := req.GetBody()
			if err != nil {
				closeResponse(lastResp)
				return nil, err
			}
			req.Body = body
		}

		resp, err := t.next.RoundTrip(req)
		switch {
		case err == nil && !t.retryableStatus(resp.StatusCode):
			closeResponse(lastResp)
			return resp, nil

		case err == nil:
			// Keep only the newest response so exhaustion can return it unread.
			closeResponse(lastResp)
			lastResp = resp
			t.logger.Warn("request failed with retryable status",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", t.maxAttempts),
				slog.Int("status", resp.StatusCode),
				slog.String("method", req.Method),
				slog.String("url", req.URL.Redacted()),
				slog.Duration("retry_in", t.delay))

		case IsRetryable(err):
			t.logger.Warn("request failed with retryable error",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", t.maxAttempts),
				slog.String("error", err.Error()),
				slog.String("method", req.Method),
				slog.String("url", req.URL.Redacted()),
				slog.Duration("retry_in", t.delay))

		default:
			closeResponse(lastResp)
			return nil, err
		}

		if attempt == t.maxAttempts {
			break
		}

		if err := t.wait(req); err != nil {
			closeResponse(lastResp)
			return nil, err
		}
	}

	if lastResp != nil {
		t.logger.Error("all attempts failed",
			slog.Int("attempts", t.maxAttempts),
			slog.Int("last_status", lastResp.StatusCode),
			slog.String("method", req.Method),
			slog.String("url", req.URL.Redacted()))
		return lastResp, nil
	}

	t.logger.Error("all attempts failed with no response",
		slog.Int("attempts", t.maxAttempts),
		slog.String("method", req.Method),
		slog.String("url", req.URL.Redacted()))
	return nil, &ExhaustedError{
		Attempts: t.maxAttempts,
		Method:   req.Method,
		URL:      req.URL.Redacted(),
	}
}

func (t *Transport) retryableStatus(code int) bool {
	_, ok := t.statuses[code]
	return ok
}

// wait blocks for the retry delay or until the request context is done.
func (t *Transport) wait(req *http.Request) error {
	if t.delay == 0 {
		select {
		case <-req.Context().Done():
			return req.Context().Err()
		default:
			return nil
		}
	}

	timer := time.NewTimer(t.delay)
	defer timer.Stop()

	select {
	case <-req.Context().Done():
		return req.Context().Err()
	case <-timer.C:
		return nil
	}
}

// closeResponse drains and closes a superseded response body so its
// connection can be reused.
func closeResponse(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	drainBody(resp.Body)
}
