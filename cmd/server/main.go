package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"tripmock/internal/app"
	"tripmock/internal/config"
	"tripmock/internal/domain"
	"tripmock/internal/fixture"
	"tripmock/internal/handler"
	"tripmock/internal/logging"
	"tripmock/internal/service"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logging.LogError(slog.Default(), "failed to load configuration", err)
		return err
	}

	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	slog.SetDefault(logger)

	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	nrApp, err := app.NewNewRelicApp(cfg.NewRelic)
	if err != nil {
		logging.LogError(logger, "New Relic disabled", err)
	} else if nrApp != nil {
		logging.LogOperation(logger, "New Relic enabled", slog.String("app", cfg.NewRelic.AppName))
	}

	trip, err := fixture.Load(cfg.Fixture.Path)
	if err != nil {
		logging.LogError(logger, "failed to load fixture", err, slog.String("path", cfg.Fixture.Path))
		return err
	}

	transformer := service.NewTripTransformer(cfg.Fixture.CurrencySymbol, cfg.Fixture.FareFields)

	// Fail at startup rather than on every request.
	if _, err := transformer.Transform(trip); err != nil {
		logging.LogError(logger, "fixture cannot be served", err, slog.String("path", cfg.Fixture.Path))
		return err
	}

	server := wireServer(cfg, trip, transformer, nrApp, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logging.LogError(logger, "failed to start server", err)
		return err
	}

	// Graceful shutdown.
	<-ctx.Done()
	logging.LogOperation(logger, "shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logging.LogError(logger, "server forced to shutdown", err)
		return err
	}

	if nrApp != nil {
		nrApp.Shutdown(cfg.Server.ShutdownTimeout)
	}

	logging.LogOperation(logger, "server exited")
	return nil
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	cfg *config.Config,
	trip *domain.Fixture,
	transformer *service.TripTransformer,
	nrApp *newrelic.Application,
	logger *slog.Logger,
) *app.Server {
	tripHandler := handler.NewTripHandler(transformer, trip)

	router := app.NewRouter(app.RouterDeps{
		TripHandler:    tripHandler,
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		NewRelicApp:    nrApp,
	})

	return app.NewServer(cfg.Server, router, logger)
}
