// internal/status/snapshot.go
package status

import "time"

// Transition is delivered to listeners exactly once per observed state change.
type Transition struct {
	Connected bool
	At        time.Time
}

// Snapshot represents the supervisor state at one instant.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health              uint16
	Connected           bool
	Since               time.Time // time of the last transition; zero before the first one
	ConsecutiveFailures uint32
	LastError           string
}
