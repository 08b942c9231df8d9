package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// ErrExhausted indicates every attempt failed without producing a response.
var ErrExhausted = errors.New("retries exhausted")

// ExhaustedError reports that all attempts threw and no response was ever
// observed. It is distinct from any individual attempt's underlying error.
type ExhaustedError struct {
	Attempts int
	Method   string
	URL      string
}

// Error implements the error interface.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d attempts failed for %s %s", e.Attempts, e.Method, e.URL)
}

// Unwrap returns ErrExhausted for errors.Is support.
func (e *ExhaustedError) Unwrap() error {
	return ErrExhausted
}

// IsRetryable reports whether an error belongs to the closed set of
// transient network failures worth retrying: read/connect timeouts,
// connection resets and refusals, and truncated reads. Context
// cancellation is never retryable; a cancelled call must not spend
// further attempts.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	return false
}

// drainBody consumes at most maxDrainBytes before closing, so the
// underlying connection stays reusable without reading unbounded bodies.
func drainBody(body io.ReadCloser) {
	const maxDrainBytes = 4 << 10
	_, _ = io.CopyN(io.Discard, body, maxDrainBytes)
	_ = body.Close()
}
