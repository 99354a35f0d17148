package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adflow/internal/adapter/generator"
	httpadapter "adflow/internal/adapter/http"
	"adflow/internal/adapter/platform"
	"adflow/internal/adapter/postgres"
	"adflow/internal/adapter/usecase"
	"adflow/internal/config"
	"adflow/internal/core/domain"
	"adflow/internal/db"
)

// main is the entry point of the adflow service. It loads configuration,
// optionally runs database migrations, initializes the database pool and
// repositories, starts the workflow engine with its performance tracker,
// then starts the HTTP server. On receiving a termination signal it
// gracefully shuts down the server and the engine.
func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	// Optionally run migrations if configured. We use the Psql sub-config.
	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("migrations applied successfully")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.RunSeed {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("demo data seeded")
	}

	store := postgres.NewRepository(pool)
	sandbox := platform.NewSandbox()

	engine, err := usecase.NewEngine(store,
		generator.NewContentProducer(),
		generator.NewImageProducer(""),
		sandbox, sandbox,
		usecase.Config{
			Thresholds: domain.Thresholds{
				CTRFloor:             cfg.Engine.CTRFloor,
				CPCCeiling:           cfg.Engine.CPCCeiling,
				ROASFloor:            cfg.Engine.ROASFloor,
				DailyCap:             cfg.Engine.DailyCap,
				WarningUtilization:   cfg.Engine.WarningUtilization,
				CriticalUtilization:  cfg.Engine.CriticalUtilization,
				EmergencyUtilization: cfg.Engine.EmergencyUtilization,
			},
			MaxRetries:            cfg.Engine.MaxRetries,
			StepTimeout:           cfg.Engine.StepTimeout,
			RetryBackoff:          cfg.Engine.RetryBackoff,
			ApprovalPollInterval:  cfg.Engine.ApprovalPollInterval,
			MonitorWindow:         cfg.Engine.MonitorWindow,
			MonitorInterval:       cfg.Engine.MonitorInterval,
			HumanApprovalRequired: cfg.Engine.HumanApprovalRequired,
		}, logger)
	if err != nil {
		logger.Error("engine init error", slog.Any("error", err))
		os.Exit(1)
	}
	engine.Start(ctx)
	if err = engine.ResumeAll(ctx); err != nil {
		logger.Error("resume workflows error", slog.Any("error", err))
	}

	tracker := usecase.NewTracker(engine, cfg.Engine.TrackingInterval, logger)
	go tracker.Start(ctx)

	svc := usecase.NewService(store, engine, logger)

	handler := httpadapter.NewHandler(svc, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
	if err = engine.Stop(shutdownCtx); err != nil {
		logger.Error("engine shutdown error", slog.Any("error", err))
	} else {
		logger.Info("engine gracefully stopped")
	}
}
