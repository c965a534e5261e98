package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adepratama/receipt-extractor/internal/common"
	"github.com/adepratama/receipt-extractor/internal/repository"
)

// Server owns the gin engine and the underlying http.Server so shutdown can
// be driven from the context.
type Server struct {
	http   *http.Server
	logger *slog.Logger
	cfg    common.ServerConfig
}

func New(cfg common.ServerConfig, h *Handler, db *repository.Handle, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	r.GET("/", h.Root)
	r.GET("/healthz", healthz(db))

	v1 := r.Group("/v1")
	{
		v1.POST("/receipts/extract", h.Extract)
		v1.GET("/receipts", h.ListReceipts)
		v1.GET("/receipts/export", h.ExportReceipts)
		v1.GET("/receipts/:id", h.GetReceipt)
		v1.GET("/receipts/:id/summary", h.GetReceiptSummary)
	}

	return &Server{
		http:   &http.Server{Addr: cfg.HTTPAddr, Handler: r},
		logger: logger,
		cfg:    cfg,
	}
}

// Run serves until ctx is cancelled, then drains connections within the
// configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), requestID))
		c.Header("X-Request-ID", requestID)

		c.Next()

		logger.Info("http.request",
			"request_id", common.RequestIDFromContext(c.Request.Context()),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}

func healthz(db *repository.Handle) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.HealthCheck(c.Request.Context(), 0); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
