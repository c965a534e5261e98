package extract

import (
	"encoding/json"

	"github.com/adepratama/receipt-extractor/constants"
	"github.com/adepratama/receipt-extractor/internal/ocr"
)

// LineItem is one purchased product or service entry. Price is the
// unit-equivalent line price printed on the receipt, not multiplied by
// Quantity.
type LineItem struct {
	Name     string             `json:"name"`
	Quantity int                `json:"quantity"`
	Price    float64            `json:"price"`
	Category constants.Category `json:"category"`
}

// Totals holds the printed footer figures. Subtotal, Tax, and ServiceCharge
// stay nil (not zero) when no matching line is found; Total is nil only when
// no explicit total line exists and must be reconciled from items.
type Totals struct {
	Subtotal      *float64
	Tax           *float64
	ServiceCharge *float64
	Total         *float64
}

// Result is the structured record recovered from one receipt. It is created
// fresh per request and never mutated after construction.
type Result struct {
	Success       bool                    `json:"success"`
	Error         string                  `json:"error,omitempty"`
	MerchantName  string                  `json:"merchant_name"`
	ReceiptType   constants.ReceiptType   `json:"receipt_type"`
	Date          string                  `json:"date"`
	Time          string                  `json:"time"`
	Items         []LineItem              `json:"items"`
	Subtotal      *float64                `json:"subtotal"`
	Tax           *float64                `json:"tax"`
	ServiceCharge *float64                `json:"service_charge"`
	Total         float64                 `json:"total"`
	PaymentMethod constants.PaymentMethod `json:"payment_method"`
	RawText       string                  `json:"raw_text"`
}

// MarshalJSON keeps the failure shape minimal: a failed result serializes to
// just the success flag and the error message.
func (r *Result) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}{r.Success, r.Error})
	}
	type alias Result
	return json.Marshal((*alias)(r))
}

// Strategy recovers line items from a normalized receipt document. The
// receipt type is passed through so fallback strategies can apply their
// per-merchant scans.
type Strategy interface {
	Name() string
	Extract(doc *ocr.Document, receiptType constants.ReceiptType) []LineItem
}
