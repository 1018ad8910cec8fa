// internal/driver/supervisor.go
package driver

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tamzrod/modbus-delta/internal/status"
)

// probe is the liveness task. A failed read marks the link down and triggers
// exactly one reconnection attempt; the next tick retries. No backoff, no cap.
func (c *Client) probe(ctx context.Context) {
	_, err := c.Coil(livenessAddress)
	if err == nil {
		c.observe(true, nil)
		return
	}
	if errors.Is(err, ErrClosed) {
		return
	}

	c.observe(false, err)
	if ctx.Err() != nil {
		return
	}
	c.reconnect()
}

func (c *Client) observe(ok bool, cause error) {
	tr, changed := c.state.Set(ok, cause)
	if !changed {
		return
	}
	fields := status.Fields(c.state.Snapshot())
	if tr.Connected {
		c.logger.Info("controller connected", fields...)
		return
	}
	c.logger.Warn("controller connection lost", append(fields, zap.Error(cause))...)
}

// reconnect replaces the session with a fresh one. The wait is bounded by
// the factory's connect timeout. Failure is logged and never fatal.
func (c *Client) reconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return
	}

	if c.session != nil {
		if err := c.session.Close(); err != nil {
			c.logger.Debug("closing stale session", zap.Error(err))
		}
		c.session = nil
	}

	s, err := c.dial()
	if err != nil {
		c.logger.Warn("connection failed", zap.Error(err))
		return
	}
	c.session = s
	c.logger.Debug("session opened")
}

// Connectivity registers a channel that receives every connectivity transition.
// The returned func unregisters it and closes the channel. Close does the same,
// and after Close the channel comes back already closed.
func (c *Client) Connectivity() (<-chan status.Transition, func()) {
	c.listenMu.Lock()
	defer c.listenMu.Unlock()

	if c.closed.Load() {
		ch := make(chan status.Transition)
		close(ch)
		return ch, func() {}
	}
	ch, stop := c.state.Listen(status.DefaultListenerBuffer)
	c.unlisten = append(c.unlisten, stop)
	return ch, stop
}

// OnConnectivityChange calls fn with the new state on every transition.
// fn runs on its own goroutine, never on the probe. fn may call Close; a call
// already in progress can still return after Close does.
func (c *Client) OnConnectivityChange(fn func(connected bool)) func() {
	if fn == nil {
		return func() {}
	}

	ch, stop := c.Connectivity()
	go func() {
		for tr := range ch {
			fn(tr.Connected)
		}
	}()

	return stop
}
