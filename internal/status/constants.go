// internal/status/constants.go
package status

// Health codes reported for the controller link.

// HealthUnknown represents the boot state before the first liveness probe.
const HealthUnknown uint16 = 0

// HealthOK represents a live connection.
const HealthOK uint16 = 1

// HealthError represents a lost connection.
const HealthError uint16 = 2

// DefaultListenerBuffer is the channel capacity handed to connectivity listeners.
const DefaultListenerBuffer = 16
