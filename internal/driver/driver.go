// internal/driver/driver.go
package driver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/modbus-delta/internal/address"
	"github.com/tamzrod/modbus-delta/internal/poller"
	"github.com/tamzrod/modbus-delta/internal/status"
	"github.com/tamzrod/modbus-delta/internal/transport"
)

var (
	ErrTransport    = errors.New("driver: transport error")
	ErrNotConnected = errors.New("driver: no session")
	ErrValueRange   = errors.New("driver: value does not fit a 16-bit register")
	ErrClosed       = errors.New("driver: client closed")
)

// livenessAddress is read by every liveness probe.
var livenessAddress = address.MustParse("M0")

// Config is the minimal runtime config the driver needs.
type Config struct {
	Host             string
	Port             int
	LivenessInterval time.Duration
	ConnectTimeout   time.Duration // bounded wait per connection attempt; default 1s
	TraceFrames      bool
}

// Client is a supervised connection to one controller.
//
// Every use of the session (liveness probe, reads, writes, reconnection) is
// serialized by mu; the transport is single-session.
type Client struct {
	cfg    Config
	dial   transport.Factory
	logger *zap.Logger

	mu      sync.Mutex
	session transport.Session

	state  *status.Tracker
	sched  *poller.Scheduler
	closed atomic.Bool

	listenMu  sync.Mutex
	unlisten  []func()
	closeOnce sync.Once
	closeErr  error
}

// New builds a client that dials cfg.Host:cfg.Port over Modbus TCP.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.Host == "" {
		return nil, errors.New("driver: host required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	dial := transport.NewFactory(transport.Config{
		Host:        cfg.Host,
		Port:        cfg.Port,
		Timeout:     cfg.ConnectTimeout,
		TraceFrames: cfg.TraceFrames,
		Logger:      logger,
	})
	return NewWithFactory(cfg, dial, logger)
}

// NewWithFactory builds a client on an arbitrary session factory.
// It makes one connection attempt, whose failure is logged and not fatal,
// then starts the liveness probe.
func NewWithFactory(cfg Config, dial transport.Factory, logger *zap.Logger) (*Client, error) {
	if dial == nil {
		return nil, errors.New("driver: session factory required")
	}
	if cfg.LivenessInterval <= 0 {
		return nil, errors.New("driver: liveness interval must be > 0")
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = transport.DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "driver"))
	if cfg.Host != "" {
		logger = logger.With(zap.String("endpoint", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)))
	}

	c := &Client{
		cfg:    cfg,
		dial:   dial,
		logger: logger,
		state:  status.NewTracker(logger),
		sched:  poller.New(context.Background(), logger),
	}

	c.reconnect()

	if _, err := c.sched.Start(poller.Task{
		Name:     "liveness",
		Interval: cfg.LivenessInterval,
		Run:      c.probe,
	}); err != nil {
		c.sched.Close()
		_ = c.closeSession()
		return nil, err
	}

	return c, nil
}

// IsConnected reports the last liveness verdict. Lock-free.
func (c *Client) IsConnected() bool {
	return c.state.Connected()
}

// Status returns the supervisor snapshot.
func (c *Client) Status() status.Snapshot {
	return c.state.Snapshot()
}

// Close stops the probe, all subscriptions and listeners, then closes the session.
// It must not be called from inside a subscription callback. Connectivity
// callbacks may call it.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.sched.Close()

		c.listenMu.Lock()
		stops := c.unlisten
		c.unlisten = nil
		c.listenMu.Unlock()
		for _, stop := range stops {
			stop()
		}

		c.closeErr = c.closeSession()
		c.logger.Info("client closed")
	})
	return c.closeErr
}

func (c *Client) closeSession() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	err := c.session.Close()
	c.session = nil
	return err
}

// withSession runs fn against the live session under the serialization lock.
func (c *Client) withSession(fn func(s transport.Session) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return ErrClosed
	}
	if c.session == nil {
		return ErrNotConnected
	}
	if err := fn(c.session); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return nil
}
