package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/adepratama/receipt-extractor/internal/common"
	"github.com/adepratama/receipt-extractor/internal/export"
	"github.com/adepratama/receipt-extractor/internal/extract"
	"github.com/adepratama/receipt-extractor/internal/repository"
	"github.com/adepratama/receipt-extractor/internal/server"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	receipts := repository.NewReceiptRepository(db, logger)
	if err := receipts.Migrate(ctx); err != nil {
		logger.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}
	if err := db.HealthCheck(ctx, cfg.Database.DialTimeout); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database ready")

	pipeline := extract.NewPipeline(logger, extract.Config{
		PriceCorrectionThreshold: cfg.Extract.PriceCorrectionThreshold,
		MinConfidence:            cfg.Extract.MinConfidence,
	})
	exporter := export.NewService(receipts, logger)
	handler := server.NewHandler(pipeline, receipts, exporter)

	srv := server.New(cfg.Server, handler, db, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}
