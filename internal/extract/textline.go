package extract

import (
	"strings"

	"github.com/adepratama/receipt-extractor/constants"
	"github.com/adepratama/receipt-extractor/internal/ocr"
)

// TextLineStrategy is the last-resort extractor, used when the boundary
// strategy finds nothing: it walks the raw text line by line, skipping the
// top of the receipt and any totals lines, and applies the shared price,
// naming, and validity logic. Two merchant-specific scans cover layouts
// where even that fails.
type TextLineStrategy struct {
	amounts *AmountNormalizer
}

func NewTextLineStrategy(amounts *AmountNormalizer) *TextLineStrategy {
	return &TextLineStrategy{amounts: amounts}
}

func (s *TextLineStrategy) Name() string { return "text-line" }

func (s *TextLineStrategy) Extract(doc *ocr.Document, receiptType constants.ReceiptType) []LineItem {
	lines := doc.Lines()

	var items []LineItem
	for i, line := range lines {
		// The first lines are merchant header, never items.
		if i < 3 {
			continue
		}
		if containsAny(strings.ToLower(line), constants.FooterKeywords) {
			continue
		}

		start, amountStr, ok := FindAmount(line)
		if !ok {
			continue
		}
		price := s.amounts.Normalize(amountStr)

		name := strings.TrimSpace(line[:start])
		if name == "" && i > 0 && IsValidItemName(lines[i-1]) {
			name = lines[i-1]
		}

		quantity := QuantityMarker(line)
		if !IsValidItemName(name) {
			continue
		}
		if q, cleaned := QuantityFromName(name); q > 1 {
			quantity = q
			name = cleaned
		}
		name = reLeadingDigits.ReplaceAllString(name, "")
		name = reLeadingQtyX.ReplaceAllString(name, "")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		items = append(items, LineItem{
			Name:     name,
			Quantity: quantity,
			Price:    price,
			Category: constants.CategorizeItem(name),
		})
	}

	if len(items) == 0 {
		switch receiptType {
		case constants.SushiGo:
			items = s.scanLiteralLines(lines, []string{"PIRING", "PLATE"}, false)
		case constants.Gomachi:
			items = s.scanLiteralLines(lines, []string{"BUTADON", "RAMEN", "GYOZA"}, true)
		}
	}
	return items
}

// scanLiteralLines recovers items from lines containing known merchant
// literals (plate-count markers, dish names). Matches default to the FOOD
// category. With nextLinePrice set, an amount on the following line is
// accepted when the literal line itself has none.
func (s *TextLineStrategy) scanLiteralLines(lines []string, literals []string, nextLinePrice bool) []LineItem {
	var items []LineItem
	for i, line := range lines {
		if !containsAnyLiteral(line, literals) {
			continue
		}

		var price float64
		start, amountStr, ok := FindAmount(line)
		if ok {
			price = s.amounts.Normalize(amountStr)
		} else if nextLinePrice && i+1 < len(lines) {
			if _, next, nextOK := FindAmount(lines[i+1]); nextOK {
				price = s.amounts.Normalize(next)
			}
		}
		if price <= 0 || !IsValidItemName(strings.TrimSpace(line)) {
			continue
		}

		name := strings.TrimSpace(line)
		if ok {
			name = strings.TrimSpace(line[:start])
		}
		quantity := QuantityMarker(line)
		if q, cleaned := QuantityFromName(name); q > 1 {
			quantity = q
			name = cleaned
		}
		name = reLeadingDigits.ReplaceAllString(name, "")
		name = reLeadingQtyX.ReplaceAllString(name, "")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		items = append(items, LineItem{
			Name:     name,
			Quantity: quantity,
			Price:    price,
			Category: constants.Food,
		})
	}
	return items
}

func containsAnyLiteral(line string, literals []string) bool {
	for _, l := range literals {
		if strings.Contains(line, l) {
			return true
		}
	}
	return false
}
