// internal/driver/subscription.go
package driver

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tamzrod/modbus-delta/internal/address"
	"github.com/tamzrod/modbus-delta/internal/poller"
)

// Subscription is one periodic user poll.
type Subscription struct {
	id     uuid.UUID
	addr   address.Address
	period time.Duration
	stop   func()
}

func (s *Subscription) ID() uuid.UUID            { return s.id }
func (s *Subscription) Address() address.Address { return s.addr }
func (s *Subscription) Period() time.Duration    { return s.period }

// Stop cancels future invocations. Safe to call from inside the callback.
func (s *Subscription) Stop() { s.stop() }

// Subscribe calls fn(a) every period, concurrently with the liveness probe.
// Callbacks are not gated on connectivity: fn should check IsConnected itself
// and do its own reads.
func (c *Client) Subscribe(a address.Address, period time.Duration, fn func(address.Address)) (*Subscription, error) {
	if fn == nil {
		return nil, errors.New("driver: subscription callback required")
	}
	if a.IsZero() {
		return nil, errors.New("driver: subscription address required")
	}
	if c.closed.Load() {
		return nil, ErrClosed
	}

	sub := &Subscription{
		id:     uuid.New(),
		addr:   a,
		period: period,
	}

	stop, err := c.sched.Start(poller.Task{
		Name:     "subscription/" + a.String() + "/" + sub.id.String(),
		Interval: period,
		Run:      func(context.Context) { fn(a) },
	})
	if errors.Is(err, poller.ErrClosed) {
		return nil, ErrClosed
	}
	if err != nil {
		return nil, err
	}

	sub.stop = stop
	return sub, nil
}
