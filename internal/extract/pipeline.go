package extract

import (
	"log/slog"

	"github.com/adepratama/receipt-extractor/constants"
	"github.com/adepratama/receipt-extractor/internal/ocr"
)

// ErrNoText is the only hard failure a token stream can produce; every other
// problem degrades to a partial result.
const ErrNoText = "No text detected in the image"

// Config holds thresholds and behavior flags for the extraction pipeline.
type Config struct {
	// PriceCorrectionThreshold: positive parsed amounts strictly below it
	// are multiplied by 1000 (OCR drops trailing zeros on
	// thousands-grouped Rupiah). Zero disables the correction.
	PriceCorrectionThreshold float64
	// MinConfidence drops tokens the OCR engine scored below it. Zero
	// keeps every token.
	MinConfidence float64
}

// Pipeline turns a raw OCR token stream into a structured receipt record.
// It is a pure function of its input; all lookup tables are built once at
// construction and shared read-only across concurrent calls.
type Pipeline struct {
	logger  *slog.Logger
	cfg     Config
	amounts *AmountNormalizer
	engine  *Engine
	totals  *TotalsExtractor
}

func NewPipeline(logger *slog.Logger, cfg Config) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PriceCorrectionThreshold < 0 {
		cfg.PriceCorrectionThreshold = 0
	}
	amounts := NewAmountNormalizer(cfg.PriceCorrectionThreshold, logger)
	return &Pipeline{
		logger:  logger,
		cfg:     cfg,
		amounts: amounts,
		engine:  NewEngine(amounts, logger),
		totals:  NewTotalsExtractor(amounts),
	}
}

// Process runs every stage over one token stream. Only an empty stream
// yields Success=false; any non-empty stream produces a best-effort result.
func (p *Pipeline) Process(tokens []ocr.TextToken) *Result {
	kept := ocr.FilterConfidence(tokens, p.cfg.MinConfidence)
	doc := ocr.NewDocument(kept)
	if doc.Empty() {
		p.logger.Warn("extract.no_text", "tokens_in", len(tokens))
		return &Result{Success: false, Error: ErrNoText}
	}

	receiptType := ClassifyReceipt(doc.FullText)
	merchant := MerchantName(doc, receiptType)
	date, clock := ExtractDateTime(doc.FullText)
	items := p.engine.Extract(doc, receiptType)
	totals := p.totals.Extract(doc.FullText)
	total := ReconcileTotal(items, totals)
	payment := constants.ClassifyPayment(doc.FullText)

	p.logger.Info("extract.ok",
		"receipt_type", receiptType,
		"merchant", merchant,
		"items", len(items),
		"total", total,
		"payment_method", payment,
	)

	if items == nil {
		items = []LineItem{}
	}
	return &Result{
		Success:       true,
		MerchantName:  merchant,
		ReceiptType:   receiptType,
		Date:          date,
		Time:          clock,
		Items:         items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		ServiceCharge: totals.ServiceCharge,
		Total:         total,
		PaymentMethod: payment,
		RawText:       doc.FullText,
	}
}
