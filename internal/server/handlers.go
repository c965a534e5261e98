package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adepratama/receipt-extractor/internal/common"
	"github.com/adepratama/receipt-extractor/internal/export"
	"github.com/adepratama/receipt-extractor/internal/extract"
	"github.com/adepratama/receipt-extractor/internal/ocr"
	"github.com/adepratama/receipt-extractor/internal/repository"
)

// maxPayloadBytes caps the token payload body. Receipts are small; anything
// bigger is a client bug.
const maxPayloadBytes = 4 << 20

type receiptResponse struct {
	ID        uuid.UUID      `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Result    extract.Result `json:"result"`
}

// Handler wires the extraction pipeline and storage to the HTTP routes.
type Handler struct {
	pipeline *extract.Pipeline
	receipts *repository.ReceiptRepository
	exporter *export.Service
	schema   map[string]any
}

func NewHandler(pipeline *extract.Pipeline, receipts *repository.ReceiptRepository, exporter *export.Service) *Handler {
	return &Handler{
		pipeline: pipeline,
		receipts: receipts,
		exporter: exporter,
		schema:   ocr.BuildTokenPayloadSchema(),
	}
}

// Root confirms the service is up.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Receipt OCR API is running."})
}

// Extract runs the pipeline over a posted token payload. Extraction failures
// (such as an empty token stream) still return 200 with success=false; only
// malformed payloads are client errors.
func (h *Handler) Extract(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPayloadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	payload, err := ocr.DecodeTokenPayload(h.schema, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.pipeline.Process(payload.Tokens)

	if c.Query("persist") == "true" && result.Success {
		id, err := h.receipts.SaveResult(c.Request.Context(), result)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Location", "/v1/receipts/"+id.String())
	}

	c.JSON(http.StatusOK, result)
}

// ListReceipts returns stored receipts, optionally bounded by transaction
// date via from/to query params (YYYY-MM-DD, inclusive).
func (h *Handler) ListReceipts(c *gin.Context) {
	from, to, err := dateWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recs, err := h.receipts.List(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]receiptResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, receiptResponse{ID: r.ID, CreatedAt: r.CreatedAt, Result: r.Result})
	}
	c.JSON(http.StatusOK, gin.H{"receipts": out, "count": len(out)})
}

// GetReceipt returns one stored receipt by ID.
func (h *Handler) GetReceipt(c *gin.Context) {
	rec, ok := h.lookupReceipt(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, receiptResponse{ID: rec.ID, CreatedAt: rec.CreatedAt, Result: rec.Result})
}

// GetReceiptSummary renders the stored receipt as the plain-text summary.
func (h *Handler) GetReceiptSummary(c *gin.Context) {
	rec, ok := h.lookupReceipt(c)
	if !ok {
		return
	}
	c.String(http.StatusOK, extract.Summary(&rec.Result))
}

// ExportReceipts streams an XLSX workbook of stored receipts.
func (h *Handler) ExportReceipts(c *gin.Context) {
	from, to, err := dateWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := h.exporter.ExportReceiptsXLSX(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipts.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *Handler) lookupReceipt(c *gin.Context) (*repository.ReceiptRecord, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receipt id"})
		return nil, false
	}
	rec, err := h.receipts.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return rec, true
}

func dateWindow(c *gin.Context) (from, to *time.Time, err error) {
	if s := c.Query("from"); s != "" {
		t, perr := time.Parse("2006-01-02", s)
		if perr != nil {
			return nil, nil, errors.New("from must be YYYY-MM-DD")
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, perr := time.Parse("2006-01-02", s)
		if perr != nil {
			return nil, nil, errors.New("to must be YYYY-MM-DD")
		}
		to = &t
	}
	return from, to, nil
}

// respondError maps the error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrInvalidInput), errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrDatabase):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
