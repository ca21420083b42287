// Package await emulates async/await on top of step drivers.
//
// A computation yields a Future every time it needs the outcome of a pending
// operation. Run awaits the future and feeds its value back with Resume, or
// its error with Fail, so that the computation reads like sequential code:
//
//	d := step.Go(func(y *step.Yielder[await.Future[Data], Data]) (string, error) {
//		data, err := y.Yield(fetch())
//		if err != nil {
//			return "", err
//		}
//		return data.Subject, nil
//	})
//	subject, err := await.Run(ctx, d)
package await

import (
	"context"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/xerrors"

	"github.com/tmr232/resumable/step"
)

// Future is a pending operation. It blocks until the operation settles or
// ctx is done.
type Future[T any] func(ctx context.Context) (T, error)

// Resolved is a future that settles immediately with value.
func Resolved[T any](value T) Future[T] {
	return func(context.Context) (T, error) {
		return value, nil
	}
}

// Rejected is a future that settles immediately with err.
func Rejected[T any](err error) Future[T] {
	return func(context.Context) (T, error) {
		var zero T
		return zero, err
	}
}

// After settles with value, or with err if it is not nil, once d has passed.
func After[T any](d time.Duration, value T, err error) Future[T] {
	return func(ctx context.Context) (T, error) {
		var zero T
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-timer.C:
		}
		if err != nil {
			return zero, err
		}
		return value, nil
	}
}

type Option func(*options)

type options struct {
	logger *slog.Logger
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Run drives d until it completes, awaiting every future it yields. A future
// that fails is injected into the computation with Fail; the computation may
// handle it and keep going. If ctx is done between steps, d is terminated and
// the context error is returned. d is always finished when Run returns.
func Run[T, R any](ctx context.Context, d *step.Driver[Future[T], T, R], opts ...Option) (R, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	var zero R
	defer d.Terminate()

	res, err := d.Start()
	for awaited := 0; err == nil && !res.Done; awaited++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, xerrors.Errorf("await: %w", ctxErr)
		}
		if res.Yielded == nil {
			return zero, xerrors.Errorf("await: step %d yielded a nil future", awaited)
		}

		value, failure := res.Yielded(ctx)
		if failure != nil {
			o.logger.Debug("future rejected", "step", awaited, "err", failure)
			res, err = d.Fail(failure)
		} else {
			o.logger.Debug("future resolved", "step", awaited)
			res, err = d.Resume(value)
		}
	}
	if err != nil {
		return zero, err
	}
	return res.Returned, nil
}
