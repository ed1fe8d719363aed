package async

import (
	"context"
	"time"

	"github.com/platinummonkey/backoffice/pkg/observability"
)

// SafeGo executes fn in a goroutine with panic recovery and error logging.
// A positive timeout bounds fn's context. The returned channel is closed when
// fn has finished, whether it returned or panicked.
//
// Use this instead of bare `go func()` so a panicking task cannot crash the
// process.
func SafeGo(parentCtx context.Context, logger *observability.Logger, timeout time.Duration, taskName string, fn func(context.Context) error) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		ctx := parentCtx
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(parentCtx, timeout)
			defer cancel()
		}

		defer observability.RecoverPanic(logger, taskName)

		if err := fn(ctx); err != nil {
			logger.WithError(err).WithField("task", taskName).Warn("background task failed")
		}
	}()

	return done
}

// SafeGoNoError is like SafeGo but for functions that don't return errors.
func SafeGoNoError(parentCtx context.Context, logger *observability.Logger, timeout time.Duration, taskName string, fn func(context.Context)) <-chan struct{} {
	return SafeGo(parentCtx, logger, timeout, taskName, func(ctx context.Context) error {
		fn(ctx)
		return nil
	})
}
