package observability

import (
	"runtime/debug"

	"go.uber.org/zap"
)

// Go runs fn on its own goroutine and logs instead of crashing on panic.
func Go(component string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				Logger().Error("panic recovered",
					zap.Any("recover", r),
					zap.String("component", component),
					zap.ByteString("stack", debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
