package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"budgetu/internal/cli"
	apphttp "budgetu/internal/http"
	"budgetu/internal/log"
	"budgetu/internal/services"
)

func main() {
	cli.LoadEnvFile()
	cfg, logger := cli.LoadAndValidateConfig(log.ComponentApp)

	res := cli.OpenBackend(context.Background(), cfg, logger)

	// Alerts are optional; the API keeps serving without a broker.
	var publisher services.RiskAlertPublisher
	amqpClient, err := cli.ConnectAMQP(cfg, logger)
	if err != nil {
		logger.Warn("Failed to initialize AMQP client, continuing without risk alerts", log.FieldError, err)
	} else if amqpClient != nil {
		publisher = amqpClient
	}

	finance := services.NewFinanceService(res.Backend, publisher)
	srv := apphttp.NewServer(cfg.Addr(), finance, apphttp.Options{
		AllowedOrigin:      cfg.AllowedOrigin,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Warn("AMQP close error", log.FieldError, err)
			}
		}
		if err := res.Close(); err != nil {
			logger.Warn("Backend close error", log.FieldError, err)
		}
	})

	logger.Info("Starting budgetu server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"alerts_enabled", publisher != nil,
		log.FieldOperation, log.OpStartup)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
