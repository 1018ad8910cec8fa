// internal/poller/types.go
package poller

import (
	"context"
	"errors"
	"time"
)

// Task is one periodic job: the liveness probe or a user subscription.
// Timing only: no semantics.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context)
}

func (t Task) validate() error {
	if t.Name == "" {
		return errors.New("poller: task name required")
	}
	if t.Interval <= 0 {
		return errors.New("poller: interval must be > 0")
	}
	if t.Run == nil {
		return errors.New("poller: task func required")
	}
	return nil
}
