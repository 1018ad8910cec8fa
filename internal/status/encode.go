// internal/status/encode.go
package status

import (
	"time"

	"go.uber.org/zap"
)

// Fields renders a snapshot as structured log fields.
// No IO. No side effects.
func Fields(s Snapshot) []zap.Field {
	fields := []zap.Field{
		zap.Uint16("health", s.Health),
		zap.Bool("connected", s.Connected),
		zap.Uint32("consecutive_failures", s.ConsecutiveFailures),
	}
	if !s.Since.IsZero() {
		fields = append(fields, zap.Time("since", s.Since))
	}
	if s.LastError != "" {
		fields = append(fields, zap.String("last_error", s.LastError))
	}
	return fields
}

// HealthName is the operator-facing label for a health code.
func HealthName(h uint16) string {
	switch h {
	case HealthOK:
		return "connected"
	case HealthError:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Uptime reports how long the current state has held.
func (s Snapshot) Uptime(now time.Time) time.Duration {
	if s.Since.IsZero() {
		return 0
	}
	return now.Sub(s.Since)
}
