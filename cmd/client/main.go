package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/dmitrijs2005/healthcomp/internal/client/cli"
	"github.com/dmitrijs2005/healthcomp/internal/client/client"
	"github.com/dmitrijs2005/healthcomp/internal/client/config"
	"github.com/dmitrijs2005/healthcomp/internal/client/telemetry"
	"github.com/dmitrijs2005/healthcomp/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, os.Stderr)

	shutdown, err := telemetry.Setup(ctx, cfg.OTelEndpoint, "healthcomp-client")
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			logger.Warn(sctx, "telemetry shutdown", "error", err)
		}
	}()

	var reporter telemetry.Reporter = telemetry.NopReporter{}
	if cfg.OTelEndpoint != "" {
		reporter = telemetry.NewOTelReporter(otel.GetTracerProvider())
	}

	core, err := client.New(ctx, client.Options{
		BackendURL:   cfg.BackendURL,
		FrontendURL:  cfg.FrontendURL,
		DatabasePath: cfg.DatabasePath,
		SingleFlight: cfg.SingleFlight,
		Logger:       logger,
		Reporter:     reporter,
		HTTPClient:   &http.Client{Timeout: cfg.RequestTimeout},
	})
	if err != nil {
		return err
	}
	defer core.Close()

	logger.Debug(ctx, "client started", "backend", cfg.BackendURL, "database", cfg.DatabasePath)
	cli.NewApp(core, logger, os.Stdin, os.Stdout).Run(ctx)
	return nil
}
