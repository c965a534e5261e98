package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/adepratama/receipt-extractor/internal/common"
)

// Handle wraps the database connection. SQLite serves single-node setups;
// a DSN switches to a pgx pool wrapped for database/sql.
type Handle struct {
	DB     *sql.DB
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Open connects using the configured backend: Postgres when cfg.DSN is set,
// otherwise the SQLite file at cfg.SQLitePath (":memory:" works).
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*Handle, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DSN != "" {
		return openPostgres(ctx, cfg, logger)
	}
	return openSQLite(cfg, logger)
}

func openPostgres(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*Handle, error) {
	logger.Info("connecting to database", "backend", "postgres")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, err
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "receipt-extractor"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = cfg.StatementTimeout.String()
	}

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}

	db := stdlib.OpenDBFromPool(pool)
	logger.Info("successfully connected to database")
	return &Handle{DB: db, pool: pool, logger: logger}, nil
}

func openSQLite(cfg common.DatabaseConfig, logger *slog.Logger) (*Handle, error) {
	logger.Info("connecting to database", "backend", "sqlite", "path", cfg.SQLitePath)
	db, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		logger.Error("failed to open sqlite database", "error", err)
		return nil, err
	}
	// modernc sqlite is not safe for concurrent writers on one file.
	db.SetMaxOpenConns(1)
	return &Handle{DB: db, logger: logger}, nil
}

// Close closes the database connections gracefully
func (h *Handle) Close() {
	h.logger.Info("closing database connections")
	if h.DB != nil {
		if err := h.DB.Close(); err != nil {
			h.logger.Error("failed to close database", "error", err)
		}
	}
	if h.pool != nil {
		h.pool.Close()
	}
}

// HealthCheck pings the database to catch connection issues early.
func (h *Handle) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return h.DB.PingContext(ctx)
}
