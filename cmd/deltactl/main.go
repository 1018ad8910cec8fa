// cmd/deltactl/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tamzrod/modbus-delta/internal/config"
	"github.com/tamzrod/modbus-delta/internal/driver"
	"github.com/tamzrod/modbus-delta/internal/logging"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: deltactl <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	logger, err := logging.New(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Driver (connection failures are never fatal)
	// --------------------

	client, err := driver.New(driver.Config{
		Host:             cfg.Controller.Host,
		Port:             cfg.Controller.Port,
		LivenessInterval: cfg.Controller.LivenessInterval(),
		ConnectTimeout:   cfg.Controller.ConnectTimeout(),
		TraceFrames:      cfg.Controller.TraceFrames,
	}, logger)
	if err != nil {
		logger.Fatal("driver init failed", zap.Error(err))
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("driver close failed", zap.Error(err))
		}
	}()

	client.OnConnectivityChange(func(connected bool) {
		logger.Info("connectivity changed", zap.Bool("connected", connected))
	})

	// ---- configured watches ----
	if err := startWatches(client, cfg.Watches, logger); err != nil {
		logger.Fatal("watch setup failed", zap.Error(err))
	}

	// --------------------
	// Interactive shell until EOF, quit or signal
	// --------------------

	editor := newLineEditor()
	defer editor.Close()

	sh := newShell(client, os.Stdout)
	done := make(chan struct{})
	go func() {
		defer close(done)
		sh.run(editor)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down", zap.String("reason", ctx.Err().Error()))
	case <-done:
	}
}
