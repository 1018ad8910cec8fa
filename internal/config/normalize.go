// internal/config/normalize.go
package config

import (
	"time"

	"github.com/tamzrod/modbus-delta/internal/address"
)

// Defaults applied by Normalize.
const (
	DefaultPort               = 502
	DefaultConnectTimeoutMs   = 1000
	DefaultLivenessIntervalMs = 500
	DefaultWatchIntervalMs    = 500
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	c := &cfg.Controller
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.ConnectTimeoutMs == 0 {
		c.ConnectTimeoutMs = DefaultConnectTimeoutMs
	}
	if c.LivenessIntervalMs == 0 {
		c.LivenessIntervalMs = DefaultLivenessIntervalMs
	}

	l := &cfg.Logging
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "console"
	}
	if l.Output == "" {
		l.Output = "stdout"
	}

	for i := range cfg.Watches {
		w := &cfg.Watches[i]
		if w.IntervalMs == 0 {
			w.IntervalMs = DefaultWatchIntervalMs
		}
		w.Kind = w.EffectiveKind()
	}
}

// EffectiveKind is Kind, or the default for the address class when unset.
// Coils live in the M class; everything else is a register.
func (w WatchConfig) EffectiveKind() WatchKind {
	if w.Kind != "" {
		return w.Kind
	}
	if w.Address.Class == address.ClassM {
		return WatchBool
	}
	return WatchInt
}

func (c ControllerConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutMs) * time.Millisecond
}

func (c ControllerConfig) LivenessInterval() time.Duration {
	return time.Duration(c.LivenessIntervalMs) * time.Millisecond
}

func (w WatchConfig) Interval() time.Duration {
	return time.Duration(w.IntervalMs) * time.Millisecond
}
