package util

import (
	"context"
	"errors"
	"time"
)

// RetryWithContext calls fn up to maxTries times until it returns a result
// and nil error, or until ctx is done. If maxTries <= 0, it defaults to 1.
// Returns ctx.Err() if the context is canceled, otherwise the last error.
func RetryWithContext[T any](ctx context.Context, maxTries int, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	return RetryWithBackoff(ctx, maxTries, 0, func(ctx context.Context) (T, error) {
		result, err := fn(ctx)
		if err != nil {
			return zero, err
		}
		return result, nil
	})
}

// PermanentError marks an error that retrying cannot fix. RetryWithBackoff
// stops and returns the wrapped error as soon as it sees one.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so retry helpers give up immediately.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// RetryWithBackoff is RetryWithContext with a linear backoff between
// attempts: the n-th retry waits n*baseDelay before running. A zero
// baseDelay disables the wait. Context errors, deadline errors, and
// errors wrapped with Permanent are returned immediately without
// further attempts.
func RetryWithBackoff[T any](ctx context.Context, maxTries int, baseDelay time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if maxTries <= 0 {
		maxTries = 1
	}
	var lastErr error
	var zero T
	for i := 0; i < maxTries; i++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		if i > 0 && baseDelay > 0 {
			wait := time.Duration(i) * baseDelay
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(wait):
			}
		}
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}
		var permanent *PermanentError
		if errors.As(err, &permanent) {
			return zero, permanent.Err
		}
		lastErr = err
	}
	return zero, lastErr
}
