// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var ErrClosed = errors.New("poller: scheduler closed")

// Scheduler runs independent periodic tasks, each on its own ticker.
type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// New creates a scheduler whose tasks all stop when parent is cancelled.
func New(parent context.Context, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
		logger: logger.With(zap.String("component", "poller")),
	}
}

// Start launches t. The first invocation happens one Interval after Start.
// The returned stop func cancels the task without waiting, so a task may stop
// itself. An invocation already running is allowed to finish.
func (s *Scheduler) Start(t Task) (func(), error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	ctx, cancel := context.WithCancel(s.ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		run(ctx, t, s.logger)
	}()

	s.logger.Debug("task started",
		zap.String("task", t.Name),
		zap.Duration("interval", t.Interval),
	)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			s.logger.Debug("task stopped", zap.String("task", t.Name))
		})
	}, nil
}

// Close cancels every task and waits for all loops to return.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}
