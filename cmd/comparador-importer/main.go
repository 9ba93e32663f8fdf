// comparador-importer loads the published IRPF CSV into SQLite and, when
// AMQP is configured, notifies running servers so they reload the dataset
// without a restart.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"comparador/internal/amqp"
	"comparador/internal/config"
	"comparador/internal/dataset"
	"comparador/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed loading .env file", "error", err)
	}

	cfg := config.Load()
	if cfg.DatasetCSV == "" {
		logger.Error("DATASET_CSV_PATH is required")
		os.Exit(1)
	}
	if cfg.SQLiteDBPath == "" {
		logger.Error("SQLITE_DB_PATH is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	src := &dataset.CSVSource{Path: cfg.DatasetCSV, MinBaseYear: cfg.MinBaseYear}
	table, err := src.Load(ctx)
	if err != nil {
		logger.Error("Failed to load CSV dataset", "error", err, "path", cfg.DatasetCSV)
		os.Exit(1)
	}
	logger.Info("CSV dataset loaded", "rows", table.Len(), "path", cfg.DatasetCSV)

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.ImportRows(ctx, table.Rows()); err != nil {
		logger.Error("Failed to import dataset", "error", err)
		os.Exit(1)
	}

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", "error", err)
			os.Exit(1)
		}
		defer client.Close()

		if err := client.PublishDatasetRefresh(ctx, cfg.DatasetCSV, table.Len()); err != nil {
			logger.Error("Failed to publish refresh notification", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Import finished", "rows", table.Len(), "database", cfg.SQLiteDBPath)
}
