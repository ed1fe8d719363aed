package observability

import (
	"fmt"
	"runtime/debug"
)

// RecoverPanic recovers from a panic and logs it with its stack. It must be
// called directly in a defer statement:
//
//	defer observability.RecoverPanic(logger, "page fetch")
//
// The panic is not re-raised.
func RecoverPanic(logger *Logger, context string) {
	if r := recover(); r != nil {
		logPanic(logger, context, r)
	}
}

// RecoverPanicWithCallback is RecoverPanic that also runs callback after a
// recovered panic, e.g. to settle state a waiting goroutine depends on.
func RecoverPanicWithCallback(logger *Logger, context string, callback func()) {
	if r := recover(); r != nil {
		logPanic(logger, context, r)
		if callback != nil {
			callback()
		}
	}
}

// MustRecover converts a recovered value into an error; nil stays nil
func MustRecover(r interface{}) error {
	if r != nil {
		return fmt.Errorf("panic: %v", r)
	}
	return nil
}

func logPanic(logger *Logger, context string, r interface{}) {
	logger.WithField("panic", r).
		WithField("stack", string(debug.Stack())).
		WithField("context", context).
		Error("PANIC recovered")
}
