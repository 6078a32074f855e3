// Command budgetu-worker consumes risk alerts from the broker and records
// them in the configured store.
package main

import (
	"context"
	"errors"
	"os"

	"budgetu/internal/cli"
	"budgetu/internal/log"
	"budgetu/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	cfg, logger := cli.LoadAndValidateConfig(log.ComponentWorker)

	if !cfg.AlertsEnabled() {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	logger.Info("Starting budgetu-worker", "backend", cfg.DataBackend, log.FieldOperation, log.OpStartup)

	res := cli.OpenBackend(context.Background(), cfg, logger)

	amqpClient, err := cli.ConnectAMQP(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		_ = res.Close()
		os.Exit(1)
	}

	alertWorker := worker.NewAlertWorker(res.Backend)

	cleanup := func(context.Context) {
		if err := amqpClient.Close(); err != nil {
			logger.Warn("AMQP close error", log.FieldError, err)
		}
		if err := res.Close(); err != nil {
			logger.Warn("Backend close error", log.FieldError, err)
		}
	}
	ctx, done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, cleanup)

	if err := amqpClient.ConsumeRiskAlerts(ctx, alertWorker.HandleRiskAlert); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Risk alert consumption failed", log.FieldError, err)
		cleanup(context.Background())
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)

	recorded, failed := alertWorker.Stats()
	logger.Info("Worker stopped gracefully", "alerts_recorded", recorded, "alerts_failed", failed)
}
