package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"carddash/internal/amqp"
	"carddash/internal/config"
	"carddash/internal/export"
	"carddash/internal/export/google"
	"carddash/internal/export/memory"
	applog "carddash/internal/log"
	"carddash/internal/storage"
	"carddash/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.ComponentWorker, slog.LevelInfo)
	applog.SetDefault(logger)

	logger.Info("Starting carddash-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err.Error())
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", applog.FieldError, err.Error(), "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	var writer export.StatementWriter
	switch cfg.ExportBackend {
	case "sheets":
		client, err := google.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets exporter", applog.FieldError, err.Error())
			os.Exit(1)
		}
		writer = client
		logger.Info("Google Sheets exporter initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		writer = memory.New()
		logger.Info("Memory exporter initialized, statement rows are not persisted")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err.Error())
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exportWorker := worker.NewExportWorker(repo, writer, cfg.SyncBatchSize)

	// Catch up on anything recorded while the worker was down.
	logger.Info("Performing startup export sweep")
	if err := exportWorker.ProcessPending(ctx); err != nil {
		logger.Error("Startup export sweep failed", applog.FieldError, err.Error())
		// Keep running; the periodic sweep retries.
	}

	go func() {
		if err := amqpClient.ConsumeTransferRecorded(ctx, exportWorker.HandleTransferRecorded); err != nil {
			if err != context.Canceled {
				logger.Error("Message consumption failed", applog.FieldError, err.Error())
			}
			cancel()
		}
	}()

	ticker := time.NewTicker(cfg.SyncInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := exportWorker.ProcessPending(ctx); err != nil {
					logger.Error("Periodic export sweep failed", applog.FieldError, err.Error())
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down worker")
	cancel()

	// Give in-flight exports a moment to finish before the deferred
	// closes tear the connections down.
	time.Sleep(2 * time.Second)
	logger.Info("Worker shutdown complete")
}
