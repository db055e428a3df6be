package async

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Future represents the result of an asynchronous computation that can be cancelled.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
	cancel context.CancelFunc
	once   sync.Once
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or until ctx is done, whichever comes first.
// Giving up on the wait does not cancel the computation; use Cancel for that.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// Done is closed once the computation has finished.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// Cancel cancels the context passed to the computation. Safe to call many
// times and after completion.
func (f *Future[U]) Cancel() {
	f.cancel()
}

// Go runs fn in its own goroutine with a context derived from ctx and returns
// a Future. The future resolves with ctx's error if ctx is already done, and
// with ErrPanic if fn panics.
func Go[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	ctx, cancel := context.WithCancel(ctx)
	f := &Future[U]{done: make(chan struct{}), cancel: cancel}

	go func() {
		defer close(f.done)
		defer cancel()

		if err := ctx.Err(); err != nil {
			f.complete(*new(U), err)
			return
		}

		res, err := run(ctx, param, fn)
		f.complete(res, err)
	}()

	return f
}

func (f *Future[U]) complete(res U, err error) {
	f.once.Do(func() {
		f.result = res
		f.err = err
	})
}

func run[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) (res U, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero U
			res = zero
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn(ctx, param)
}

// Sleep pauses for d or until ctx is done. It returns ctx's error in the
// latter case.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
