package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"budsjetto/internal/backend"
	"budsjetto/internal/config"
	"budsjetto/internal/export"
	apphttp "budsjetto/internal/http"
	applog "budsjetto/internal/log"
	"budsjetto/internal/service"
)

func main() {
	// Optional .env for local development; real env vars win.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger).Create(backend.Config{
		Type:         backend.Type(cfg.Backend),
		DataFile:     cfg.DataFile,
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize data backend",
			applog.FieldError, err,
			applog.FieldBackend, cfg.Backend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", applog.FieldError, err)
			}
		}()
	}

	ledger := service.NewLedger(result.Store, export.NewCSVExporter(cfg.ExportDir))
	if err := ledger.Load(context.Background()); err != nil {
		// Load already fell back to the empty default; start from it rather
		// than crash. The unreadable or corrupt document stays on disk for
		// manual recovery until the next successful save.
		logger.Error("Failed to load persisted state, starting empty",
			applog.FieldError, err,
			applog.FieldBackend, cfg.Backend)
	}

	srv := apphttp.NewServer(":"+cfg.Port, ledger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting budsjetto server",
			applog.FieldPort, cfg.Port,
			applog.FieldBackend, cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err, applog.FieldPort, cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
