// Package async runs computations in goroutines and exposes their eventual
// result as a cancellable Future.
//
// Go starts the supplied function with a context derived from the caller's
// and returns immediately. The caller can wait with Await or AwaitContext,
// select on Done, or stop the work with Cancel. Cancelling only signals the function through its context; a
// well-behaved function returns ctx.Err() promptly, for example by sleeping
// with Sleep instead of time.Sleep.
//
// # Usage
//
//	future := async.Go(ctx, values, func(ctx context.Context, v Values) (Values, error) {
//	    if err := async.Sleep(ctx, 1500*time.Millisecond); err != nil {
//	        return Values{}, err
//	    }
//	    return v, nil
//	})
//	defer future.Cancel()
//
//	res, err := future.Await()
//
// # Error Handling
//
// A panic inside the function is recovered and reported as ErrPanic so it
// never crashes the process. AwaitContext returns ctx.Err() when the caller
// gives up first.
package async
