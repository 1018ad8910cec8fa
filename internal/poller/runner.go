// internal/poller/runner.go
package poller

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// run is the ticker loop of one task.
// One goroutine per task. No overlap. No retries.
func run(ctx context.Context, t Task, logger *zap.Logger) {
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Both cases may be ready at once; never tick after cancellation.
			if ctx.Err() != nil {
				return
			}
			tick(ctx, t, logger)
		}
	}
}

// tick runs one invocation and keeps a panicking body from killing the loop.
func tick(ctx context.Context, t Task, logger *zap.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("task panicked",
				zap.String("task", t.Name),
				zap.Any("panic", r),
			)
		}
	}()
	t.Run(ctx)
}
