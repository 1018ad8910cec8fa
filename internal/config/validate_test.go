// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/modbus-delta/internal/address"
)

// helper to build a valid config quickly
func base(watches ...WatchConfig) *Config {
	return &Config{
		Controller: ControllerConfig{Host: "192.168.1.1"},
		Watches:    watches,
	}
}

func watch(addr string, kind WatchKind, ms int) WatchConfig {
	return WatchConfig{Address: address.MustParse(addr), Kind: kind, IntervalMs: ms}
}

const sample = `
controller:
  host: 192.168.1.1
  port: 502
  liveness_interval_ms: 100
logging:
  level: debug
  format: json
watches:
  - address: M123
    interval_ms: 500
  - address: D194
    kind: int
`

// ---- tests ----

func TestParse_Sample(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	assert.Equal(t, "192.168.1.1", cfg.Controller.Host)
	assert.Equal(t, 100, cfg.Controller.LivenessIntervalMs)
	require.Len(t, cfg.Watches, 2)
	assert.Equal(t, uint16(194), cfg.Watches[1].Address.Physical())
}

func TestParse_RejectsUnknownKeysAndBadAddresses(t *testing.T) {
	_, err := Parse([]byte("controller:\n  hots: x\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("watches:\n  - address: Q7\n"))
	assert.ErrorIs(t, err, address.ErrInvalidAddressClass)

	_, err = Parse([]byte("watches:\n  - address: T9000\n"))
	assert.ErrorIs(t, err, address.ErrAddressRange)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deltactl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 502, cfg.Controller.Port)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate_Minimal(t *testing.T) {
	assert.NoError(t, Validate(base()))
}

func TestValidate_ControllerErrors(t *testing.T) {
	cases := map[string]func(c *Config){
		"no host":          func(c *Config) { c.Controller.Host = "" },
		"port high":        func(c *Config) { c.Controller.Port = 70000 },
		"port negative":    func(c *Config) { c.Controller.Port = -1 },
		"timeout negative": func(c *Config) { c.Controller.ConnectTimeoutMs = -5 },
		"interval":         func(c *Config) { c.Controller.LivenessIntervalMs = -1 },
		"log level":        func(c *Config) { c.Logging.Level = "chatty" },
		"log format":       func(c *Config) { c.Logging.Format = "xml" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base()
			mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}

	assert.Error(t, Validate(nil))
}

func TestValidate_WatchErrors(t *testing.T) {
	assert.Error(t, Validate(base(WatchConfig{IntervalMs: 100})))
	assert.Error(t, Validate(base(watch("M1", "float", 100))))
	assert.Error(t, Validate(base(watch("M1", WatchBool, -1))))
}

func TestValidate_DuplicateWatch(t *testing.T) {
	cfg := base(
		watch("D10", WatchInt, 100),
		watch("D10", WatchInt, 250),
	)
	assert.Error(t, Validate(cfg))
}

func TestValidate_DuplicateAfterDefaultKind(t *testing.T) {
	assert.Error(t, Validate(base(
		watch("M5", "", 100),
		watch("M5", WatchBool, 250),
	)))
	assert.Error(t, Validate(base(
		watch("D6", WatchInt, 100),
		watch("D6", "", 100),
	)))
	assert.NoError(t, Validate(base(
		watch("M5", "", 100),
		watch("M5", WatchInt, 100),
	)))
}

func TestEffectiveKind(t *testing.T) {
	assert.Equal(t, WatchBool, watch("M1", "", 0).EffectiveKind())
	assert.Equal(t, WatchInt, watch("D1", "", 0).EffectiveKind())
	assert.Equal(t, WatchInt, watch("T1", "", 0).EffectiveKind())
	assert.Equal(t, WatchBool, watch("T1", WatchBool, 0).EffectiveKind())
}

func TestValidate_SameAddressDifferentKindAllowed(t *testing.T) {
	cfg := base(
		watch("D10", WatchInt, 100),
		watch("D10", WatchBool, 100),
	)
	assert.NoError(t, Validate(cfg))
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := base(watch("M5", "", 0))
	require.NoError(t, Validate(cfg))
	assert.Equal(t, 0, cfg.Controller.Port)
	assert.Equal(t, WatchKind(""), cfg.Watches[0].Kind)
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := base(watch("M5", "", 0), watch("D6", "", 0), watch("T1", WatchBool, 20))
	require.NoError(t, Validate(cfg))
	Normalize(cfg)

	assert.Equal(t, DefaultPort, cfg.Controller.Port)
	assert.Equal(t, time.Second, cfg.Controller.ConnectTimeout())
	assert.Equal(t, 500*time.Millisecond, cfg.Controller.LivenessInterval())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)

	assert.Equal(t, WatchBool, cfg.Watches[0].Kind)
	assert.Equal(t, WatchInt, cfg.Watches[1].Kind)
	assert.Equal(t, WatchBool, cfg.Watches[2].Kind)
	assert.Equal(t, 500*time.Millisecond, cfg.Watches[0].Interval())
	assert.Equal(t, 20*time.Millisecond, cfg.Watches[2].Interval())

	Normalize(nil)
}
