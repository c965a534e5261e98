package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/adepratama/receipt-extractor/internal/extract"
	"github.com/adepratama/receipt-extractor/internal/repository"
)

// Service is a tiny façade over the receipt repository that produces XLSX
// bytes for exports.
type Service struct {
	receipts *repository.ReceiptRepository
	logger   *slog.Logger
}

func NewService(repo *repository.ReceiptRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{receipts: repo, logger: logger}
}

// ExportReceiptsXLSX returns an XLSX workbook (as bytes) for the given date window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all stored receipts.
func (s *Service) ExportReceiptsXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	// Normalize dates (date-only, UTC)
	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}

	recs, err := s.receipts.List(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Receipts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Transaction Date",
		"Time",
		"Merchant",
		"Receipt Type",
		"Items",
		"Subtotal",
		"Tax",
		"Service Charge",
		"Total",
		"Payment Method",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		res := r.Result

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, res.Date)
		write(2, res.Time)
		write(3, res.MerchantName)
		write(4, string(res.ReceiptType))
		write(5, truncate(itemSummary(res.Items), 140))
		if res.Subtotal != nil {
			write(6, *res.Subtotal)
		}
		if res.Tax != nil {
			write(7, *res.Tax)
		}
		if res.ServiceCharge != nil {
			write(8, *res.ServiceCharge)
		}
		write(9, res.Total)
		write(10, string(res.PaymentMethod))

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 14) // date
	_ = f.SetColWidth(sheet, "B", "B", 8)  // time
	_ = f.SetColWidth(sheet, "C", "C", 28) // merchant
	_ = f.SetColWidth(sheet, "D", "D", 14) // type
	_ = f.SetColWidth(sheet, "E", "E", 48) // items
	_ = f.SetColWidth(sheet, "F", "I", 14) // amounts
	_ = f.SetColWidth(sheet, "J", "J", 16) // payment

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// itemSummary flattens line items into a single cell, e.g. "2x GYOZA; 1x TEA".
func itemSummary(items []extract.LineItem) string {
	if len(items) == 0 {
		return "—"
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
	}
	return strings.Join(parts, "; ")
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
