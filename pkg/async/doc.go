// Package async provides safe goroutine execution for background tasks.
//
// SafeGo runs a task in its own goroutine with panic recovery, an optional
// timeout and structured error logging:
//
//	done := async.SafeGo(ctx, logger, 0, "page fetch", func(ctx context.Context) error {
//		return load(ctx)
//	})
//	<-done
//
// The returned channel is closed once the task has returned or panicked.
package async
