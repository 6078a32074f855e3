package cli

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"budgetu/internal/config"
	"budgetu/internal/log"
)

func quietLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = io.Discard
	return log.New(cfg)
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := SetupLogger(&config.Config{LogLevel: "debug", LogFormat: "json"}, log.ComponentWorker)
	if logger.Component() != log.ComponentWorker {
		t.Fatalf("component = %q", logger.Component())
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug level not applied")
	}
	if slog.Default() != logger.Logger {
		t.Fatal("logger not installed as slog default")
	}

	fallback := SetupLogger(&config.Config{LogLevel: "loud"}, log.ComponentApp)
	if fallback.Enabled(context.Background(), slog.LevelDebug) || !fallback.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("unknown level should fall back to info")
	}
}

func TestConnectAMQPDisabled(t *testing.T) {
	client, err := ConnectAMQP(&config.Config{}, quietLogger())
	if err != nil || client != nil {
		t.Fatalf("ConnectAMQP() = %v, %v; want nil, nil", client, err)
	}
}

func TestRunCleanup(t *testing.T) {
	called := false
	runCleanup(quietLogger(), time.Second, func(ctx context.Context) {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("cleanup context has no deadline")
		}
		called = true
	})
	if !called {
		t.Fatal("cleanup not called")
	}

	start := time.Now()
	runCleanup(quietLogger(), 20*time.Millisecond, func(ctx context.Context) {
		time.Sleep(time.Second)
	})
	if time.Since(start) > 500*time.Millisecond {
		t.Fatal("runCleanup did not honor the timeout")
	}

	runCleanup(quietLogger(), time.Second, nil)
}
