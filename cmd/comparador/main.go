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

	"comparador/internal/amqp"
	"comparador/internal/config"
	"comparador/internal/dataset"
	apphttp "comparador/internal/http"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed loading .env file", "error", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, err := dataset.New(ctx, dataset.Config{
		Backend:       cfg.DataBackend,
		CSVPath:       cfg.DatasetCSV,
		SQLiteDBPath:  cfg.SQLiteDBPath,
		SpreadsheetID: cfg.SpreadsheetID,
		ReadRange:     cfg.SheetRange,
		MinBaseYear:   cfg.MinBaseYear,
	})
	if err != nil {
		logger.Error("Failed to initialize dataset source", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	provider := dataset.NewProvider(src)
	if err := provider.Load(ctx); err != nil {
		logger.Error("Failed to load dataset", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, provider, apphttp.Options{
		ReferenceOccupation: cfg.ReferenceOccupation,
		ReferenceLabel:      cfg.ReferenceLabel,
		DefaultRegion:       cfg.DefaultRegion,
		CacheSize:           cfg.CacheSize,
		CacheTTL:            cfg.CacheTTL,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting comparador server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Optional: listen for dataset-refresh notifications from the importer
	// and swap in a fresh snapshot on each one.
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", "error", err)
			os.Exit(1)
		}
		defer client.Close()

		g.Go(func() error {
			err := client.ConsumeDatasetRefresh(gctx, func(msg *amqp.DatasetRefreshMessage) error {
				return provider.Reload(gctx)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
