// internal/config/config.go
package config

import "github.com/tamzrod/modbus-delta/internal/address"

type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	Logging    LoggingConfig    `yaml:"logging"`
	Watches    []WatchConfig    `yaml:"watches"`
}

// ---- CONTROLLER ----

type ControllerConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	ConnectTimeoutMs   int    `yaml:"connect_timeout_ms"`
	LivenessIntervalMs int    `yaml:"liveness_interval_ms"`
	TraceFrames        bool   `yaml:"trace_frames"`
}

// ---- LOGGING ----

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Output     string `yaml:"output"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// ---- WATCHES ----

// WatchKind selects how a watched register is read.
type WatchKind string

const (
	WatchBool WatchKind = "bool"
	WatchInt  WatchKind = "int"
)

// WatchConfig is one periodic subscription started by the CLI.
type WatchConfig struct {
	Address    address.Address `yaml:"address"`
	Kind       WatchKind       `yaml:"kind"`
	IntervalMs int             `yaml:"interval_ms"`
}
