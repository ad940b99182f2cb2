package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnsupportedOperation marks a request for an operation the adapter does
// not declare support for. It is a programming-contract violation: callers
// fail fast instead of degrading through the stale/fallback chain.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// UpstreamError captures a non-2xx response from the upstream provider.
type UpstreamError struct {
	League  string
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "upstream request failed"
	}
	return fmt.Sprintf("%s (status=%d)", msg, e.Status)
}

// AsUpstreamError attempts to unwrap an error into an UpstreamError.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr, true
	}
	return nil, false
}

// TimeoutError marks an upstream call that exceeded its configured deadline.
type TimeoutError struct {
	Op      Operation
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("%s call exceeded %s deadline", e.Op, e.Timeout)
	}
	return fmt.Sprintf("%s call timed out", e.Op)
}

// IsTimeout reports whether err is (or wraps) a TimeoutError.
func IsTimeout(err error) bool {
	var tErr *TimeoutError
	return errors.As(err, &tErr)
}

// MalformedResponseError marks an upstream payload that could not be
// normalized.
type MalformedResponseError struct {
	League string
	Op     Operation
	Cause  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s response for %s: %v", e.Op, e.League, e.Cause)
}

func (e *MalformedResponseError) Unwrap() error { return e.Cause }

// Degradable reports whether a failure should be absorbed by the
// stale-cache/fallback chain. Everything except the unsupported-operation
// contract violation degrades.
func Degradable(err error) bool {
	return err != nil && !errors.Is(err, ErrUnsupportedOperation)
}
