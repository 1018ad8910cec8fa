// internal/status/tracker.go
package status

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Tracker owns the connected flag of one controller link.
//
// Reads are lock-free. Set performs the before/after comparison and the
// listener fan-out inside one critical section, so concurrent probes can
// neither miss nor duplicate a transition.
type Tracker struct {
	connected atomic.Bool

	mu        sync.Mutex
	previous  bool
	probed    bool
	since     time.Time
	failures  uint32
	lastErr   string
	listeners map[uint64]chan Transition
	nextID    uint64

	logger *zap.Logger
	now    func() time.Time
}

// NewTracker returns a tracker in the Disconnected state.
func NewTracker(logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		listeners: make(map[uint64]chan Transition),
		logger:    logger,
		now:       time.Now,
	}
}

// Connected reports the last observed state.
func (t *Tracker) Connected() bool {
	return t.connected.Load()
}

// Set records one observation. cause is the probe error, nil on success.
// It returns the transition and true only when the state actually changed.
func (t *Tracker) Set(connected bool, cause error) (Transition, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.probed = true
	if connected {
		t.failures = 0
		t.lastErr = ""
	} else {
		t.failures++
		if cause != nil {
			t.lastErr = cause.Error()
		}
	}

	t.connected.Store(connected)
	if connected == t.previous {
		return Transition{}, false
	}

	tr := Transition{Connected: connected, At: t.now()}
	t.previous = connected
	t.since = tr.At

	for id, ch := range t.listeners {
		select {
		case ch <- tr:
		default:
			t.logger.Warn("connectivity listener full, transition dropped",
				zap.Uint64("listener", id),
				zap.Bool("connected", connected),
			)
		}
	}

	return tr, true
}

// Listen registers a listener channel with the given capacity.
// The returned func unregisters it and closes the channel; it is safe to call twice.
func (t *Tracker) Listen(buffer int) (<-chan Transition, func()) {
	if buffer <= 0 {
		buffer = DefaultListenerBuffer
	}
	ch := make(chan Transition, buffer)

	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = ch
	t.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.listeners, id)
			t.mu.Unlock()
			close(ch)
		})
	}
}

// Snapshot returns a consistent copy of the tracker state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot{
		Health:              HealthUnknown,
		Connected:           t.previous,
		Since:               t.since,
		ConsecutiveFailures: t.failures,
		LastError:           t.lastErr,
	}
	if t.probed {
		s.Health = HealthError
		if t.previous {
			s.Health = HealthOK
		}
	}
	return s
}
