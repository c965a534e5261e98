package extract

import (
	"log/slog"

	"github.com/adepratama/receipt-extractor/constants"
	"github.com/adepratama/receipt-extractor/internal/ocr"
)

// Engine dispatches item extraction to the strategy registered for the
// receipt type. Types without a dedicated strategy run the generic boundary
// strategy and, when that yields nothing, the text-line fallback.
type Engine struct {
	logger   *slog.Logger
	perType  map[constants.ReceiptType]Strategy
	generic  Strategy
	fallback Strategy
}

func NewEngine(amounts *AmountNormalizer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		logger: logger,
		perType: map[constants.ReceiptType]Strategy{
			constants.Chatime: NewBeverageStrategy(amounts),
		},
		generic:  NewGenericStrategy(amounts),
		fallback: NewTextLineStrategy(amounts),
	}
}

// Extract runs the strategy chain for the document. A dedicated per-type
// strategy is authoritative: its result is returned even when empty.
func (e *Engine) Extract(doc *ocr.Document, receiptType constants.ReceiptType) []LineItem {
	if s, ok := e.perType[receiptType]; ok {
		items := s.Extract(doc, receiptType)
		e.logger.Debug("items.extract", "strategy", s.Name(), "receipt_type", receiptType, "items", len(items))
		return items
	}

	items := e.generic.Extract(doc, receiptType)
	strategy := e.generic.Name()
	if len(items) == 0 {
		items = e.fallback.Extract(doc, receiptType)
		strategy = e.fallback.Name()
	}
	e.logger.Debug("items.extract", "strategy", strategy, "receipt_type", receiptType, "items", len(items))
	return items
}
