package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/adepratama/receipt-extractor/internal/common"
	"github.com/adepratama/receipt-extractor/internal/export"
	"github.com/adepratama/receipt-extractor/internal/extract"
	"github.com/adepratama/receipt-extractor/internal/ingest"
	"github.com/adepratama/receipt-extractor/internal/ocr"
	"github.com/adepratama/receipt-extractor/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		inmem   = flag.Bool("inmem", false, "use in-memory SQLite database")
		dir     = flag.String("dir", "", "directory of OCR token payload files (required)")
		out     = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		fromStr = flag.String("from", "", "from date YYYY-MM-DD")
		toStr   = flag.String("to", "", "to date YYYY-MM-DD")
		watch   = flag.Bool("watch", false, "keep watching the directory for new payloads")
	)
	flag.Parse()

	// Validate required flags
	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	// If output file not specified, use parent directory with default filename
	if *out == "" {
		parentDir := filepath.Dir(*dir)
		*out = filepath.Join(parentDir, "receipts.xlsx")
	}

	// Parse date filters
	var from, to *time.Time
	if *fromStr != "" {
		if parsed, err := time.Parse("2006-01-02", *fromStr); err != nil {
			printError("Error: invalid --from date format, use YYYY-MM-DD: %v\n", err)
			os.Exit(1)
		} else {
			from = &parsed
		}
	}
	if *toStr != "" {
		if parsed, err := time.Parse("2006-01-02", *toStr); err != nil {
			printError("Error: invalid --to date format, use YYYY-MM-DD: %v\n", err)
			os.Exit(1)
		} else {
			to = &parsed
		}
	}

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := common.LoadConfig()
	if *inmem {
		cfg.Database.DSN = ""
		cfg.Database.SQLitePath = ":memory:"
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

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

	pipeline := extract.NewPipeline(logger, extract.Config{
		PriceCorrectionThreshold: cfg.Extract.PriceCorrectionThreshold,
		MinConfidence:            cfg.Extract.MinConfidence,
	})
	schema := ocr.BuildTokenPayloadSchema()

	processed := 0
	failures := 0
	processFile := func(path string) {
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Error("failed to read payload", "path", path, "error", err)
			failures++
			return
		}
		payload, err := ocr.DecodeTokenPayload(schema, raw)
		if err != nil {
			logger.Error("invalid payload", "path", path, "error", err)
			failures++
			return
		}
		result := pipeline.Process(payload.Tokens)
		if !result.Success {
			logger.Warn("extraction failed", "path", path, "error", result.Error)
			failures++
			return
		}
		if _, err := receipts.SaveResult(ctx, result); err != nil {
			logger.Error("failed to save result", "path", path, "error", err)
			failures++
			return
		}
		processed++
	}

	if *watch {
		events, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       []string{*dir},
			InitialScan: true,
			Debounce:    500 * time.Millisecond,
		})
		if err != nil {
			logger.Error("failed to start watcher", "error", err)
			os.Exit(1)
		}
		logger.Info("watching for payloads", "dir", *dir)
	loop:
		for {
			select {
			case <-ctx.Done():
				break loop
			case path, ok := <-events:
				if !ok {
					break loop
				}
				processFile(path)
			case werr, ok := <-watchErrs:
				if ok && werr != nil {
					logger.Error("watcher error", "error", werr)
				}
			}
		}
	} else {
		paths, stats, err := ingest.ScanDirectory(*dir)
		if err != nil {
			logger.Error("failed to scan directory", "dir", *dir, "error", err)
			os.Exit(1)
		}
		logger.Info("scan complete",
			"scanned", stats.Scanned,
			"matched", stats.Matched,
			"failed", stats.Failed)
		for _, path := range paths {
			processFile(path)
		}
	}

	// Export to XLSX. A fresh context so a SIGINT that ended watch mode does
	// not also abort the export.
	logger.Info("exporting to XLSX", "output", *out)
	exportService := export.NewService(receipts, logger)

	xlsxBytes, err := exportService.ExportReceiptsXLSX(context.Background(), from, to)
	if err != nil {
		logger.Error("failed to export receipts", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	logger.Info("batch processing complete",
		"files_processed", processed,
		"failures", failures,
		"output_file", *out)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files processed: %d\n", processed)
	fmt.Printf("- Failures: %d\n", failures)
	fmt.Printf("- Output: %s\n", *out)
}
