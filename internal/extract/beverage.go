package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/adepratama/receipt-extractor/constants"
	"github.com/adepratama/receipt-extractor/internal/ocr"
)

// Chatime prints "1 x ITEM NAME (L)" with the amount on the same line, and a
// modifier line ("SUGAR LESS") underneath.
var reBeverageItem = regexp.MustCompile(`(\d+)\s*[xX]\s*([A-Za-z\s]+?)(?:\([A-Za-z]\))?\s*(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{0,3}))`)

// BeverageStrategy handles the beverage-chain layout. It is authoritative
// for its receipt type: the engine returns its result even when empty.
type BeverageStrategy struct {
	amounts *AmountNormalizer
}

func NewBeverageStrategy(amounts *AmountNormalizer) *BeverageStrategy {
	return &BeverageStrategy{amounts: amounts}
}

func (s *BeverageStrategy) Name() string { return "beverage-chain" }

func (s *BeverageStrategy) Extract(doc *ocr.Document, _ constants.ReceiptType) []LineItem {
	lines := doc.Lines()

	var items []LineItem
	for i, line := range lines {
		m := reBeverageItem.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		quantity, err := strconv.Atoi(m[1])
		if err != nil || quantity < 1 {
			quantity = 1
		}
		name := strings.TrimSpace(m[2])
		price := s.amounts.Normalize(m[3])

		// A sugar-level modifier on the next line belongs to this item.
		if i+1 < len(lines) && strings.Contains(lines[i+1], "SUGAR") {
			name = name + " (" + strings.TrimSpace(lines[i+1]) + ")"
		}

		items = append(items, LineItem{
			Name:     name,
			Quantity: quantity,
			Price:    price,
			Category: constants.CategorizeItem(name),
		})
	}
	if len(items) > 0 {
		return items
	}
	return s.extractLoose(lines)
}

// extractLoose is the secondary pass for degraded scans where the strict
// line pattern never matches: any non-totals line containing an "x"
// delimiter, with the amount on the same line or alone on the next.
func (s *BeverageStrategy) extractLoose(lines []string) []LineItem {
	var items []LineItem
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "x") || containsAny(lower, []string{"subtotal", "total", "tax"}) {
			continue
		}

		var price float64
		start, amountStr, hasPrice := FindAmount(line)
		if hasPrice {
			price = s.amounts.Normalize(amountStr)
		} else if i+1 < len(lines) && reBareNumber.MatchString(strings.TrimSpace(lines[i+1])) {
			price = s.amounts.Normalize(strings.TrimSpace(lines[i+1]))
		}
		if price <= 0 {
			continue
		}

		parts := strings.SplitN(line, "x", 2)
		if len(parts) != 2 {
			continue
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		name := strings.TrimSpace(parts[1])
		if hasPrice {
			name = strings.TrimSpace(line[:start])
			if strings.Contains(name, "x") {
				name = strings.TrimSpace(strings.SplitN(name, "x", 2)[1])
			}
		}

		items = append(items, LineItem{
			Name:     name,
			Quantity: quantity,
			Price:    price,
			Category: constants.CategorizeItem(name),
		})
	}
	return items
}
