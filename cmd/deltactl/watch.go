// cmd/deltactl/watch.go
package main

import (
	"sync"

	"go.uber.org/zap"

	"github.com/tamzrod/modbus-delta/internal/address"
	"github.com/tamzrod/modbus-delta/internal/config"
	"github.com/tamzrod/modbus-delta/internal/driver"
)

// watcher is the subscription callback for one configured watch.
// It skips polls while disconnected and logs only value changes.
type watcher struct {
	client watchClient
	kind   config.WatchKind
	logger *zap.Logger

	mu   sync.Mutex
	last *int
}

// watchClient is the part of the driver a watch needs.
type watchClient interface {
	IsConnected() bool
	ReadBoolean(a address.Address) (bool, bool)
	ReadSignedValue(a address.Address) (int, bool)
}

func (w *watcher) poll(a address.Address) {
	if !w.client.IsConnected() {
		return
	}

	var v int
	switch w.kind {
	case config.WatchBool:
		on, ok := w.client.ReadBoolean(a)
		if !ok {
			return
		}
		if on {
			v = 1
		}
	default:
		n, ok := w.client.ReadSignedValue(a)
		if !ok {
			return
		}
		v = n
	}

	w.mu.Lock()
	changed := w.last == nil || *w.last != v
	w.last = &v
	w.mu.Unlock()

	if changed {
		w.logger.Info("watch value", zap.Stringer("address", a), zap.Int("value", v))
	}
}

func startWatches(c *driver.Client, watches []config.WatchConfig, logger *zap.Logger) error {
	for _, wc := range watches {
		w := &watcher{
			client: c,
			kind:   wc.Kind,
			logger: logger.With(zap.String("component", "watch")),
		}
		sub, err := c.Subscribe(wc.Address, wc.Interval(), w.poll)
		if err != nil {
			return err
		}
		logger.Info("watch started",
			zap.Stringer("address", wc.Address),
			zap.String("kind", string(wc.Kind)),
			zap.Duration("interval", sub.Period()),
			zap.String("subscription", sub.ID().String()),
		)
	}
	return nil
}
