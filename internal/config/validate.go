// internal/config/validate.go
package config

import (
	"errors"
	"fmt"

	"github.com/tamzrod/modbus-delta/internal/logging"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values mean "use the default" and pass; Normalize fills them in.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: empty")
	}

	// ------------------------------------------------------------
	// CONTROLLER
	// ------------------------------------------------------------

	c := cfg.Controller
	if c.Host == "" {
		return errors.New("controller: host is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("controller: port %d out of range", c.Port)
	}
	if c.ConnectTimeoutMs < 0 {
		return fmt.Errorf("controller: connect_timeout_ms must be > 0, got %d", c.ConnectTimeoutMs)
	}
	if c.LivenessIntervalMs < 0 {
		return fmt.Errorf("controller: liveness_interval_ms must be > 0, got %d", c.LivenessIntervalMs)
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		return err
	}
	switch cfg.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging: format must be json or console, got %q", cfg.Logging.Format)
	}

	// ------------------------------------------------------------
	// WATCHES
	// ------------------------------------------------------------

	// key = address | kind
	seen := make(map[string]int)

	for i, w := range cfg.Watches {
		if w.Address.IsZero() {
			return fmt.Errorf("watch #%d: address is required", i)
		}
		if w.IntervalMs < 0 {
			return fmt.Errorf("watch %s: interval_ms must be > 0, got %d", w.Address, w.IntervalMs)
		}
		switch w.Kind {
		case "", WatchBool, WatchInt:
		default:
			return fmt.Errorf("watch %s: kind must be bool or int, got %q", w.Address, w.Kind)
		}

		key := fmt.Sprintf("%s|%s", w.Address, w.EffectiveKind())
		if prev, exists := seen[key]; exists {
			return fmt.Errorf("watch %s: duplicate of watch #%d", w.Address, prev)
		}
		seen[key] = i
	}

	return nil
}
