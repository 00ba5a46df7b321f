// ABOUTME: Typed results for source adapter calls
// ABOUTME: Bounds each call with a timeout and classifies failures as timeout or unavailable
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/harper/agri-advisor/internal/models"
)

// Result is the outcome of one adapter call. Err is nil on success and
// otherwise wraps ErrAdapterTimeout or ErrAdapterUnavailable.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the call produced a value
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// TimedOut reports whether the call ran out of time
func (r Result[T]) TimedOut() bool {
	return errors.Is(r.Err, models.ErrAdapterTimeout)
}

type outcome[T any] struct {
	value T
	err   error
}

// Fetch runs fn under timeout and converts every failure into an adapter error.
// A timeout <= 0 leaves ctx's own deadline in charge. Fetch returns when the
// deadline passes even if fn ignores its context; fn then finishes in the background.
func Fetch[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) Result[T] {
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan outcome[T], 1)
	go func() {
		v, err := fn(callCtx)
		done <- outcome[T]{value: v, err: err}
	}()

	var v T
	var err error
	select {
	case o := <-done:
		v, err = o.value, o.err
	case <-callCtx.Done():
		err = callCtx.Err()
	}
	if err == nil {
		return Result[T]{Value: v}
	}

	var zero T
	switch {
	case errors.Is(err, models.ErrAdapterTimeout), errors.Is(err, models.ErrAdapterUnavailable):
		return Result[T]{Value: zero, Err: err}
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded):
		return Result[T]{Value: zero, Err: goerr.Wrap(models.ErrAdapterTimeout, "adapter call timed out",
			goerr.V("timeout", timeout.String()),
			goerr.V("cause", err.Error()))}
	}
	return Result[T]{Value: zero, Err: goerr.Wrap(models.ErrAdapterUnavailable, "adapter call failed",
		goerr.V("cause", err.Error()))}
}
