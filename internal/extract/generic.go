package extract

import (
	"strings"

	"github.com/adepratama/receipt-extractor/constants"
	"github.com/adepratama/receipt-extractor/internal/ocr"
)

// GenericStrategy is the position-based extractor used for every receipt
// type without a dedicated strategy. It brackets the item region between the
// column-header row and the totals footer, then reads one candidate item per
// token line.
type GenericStrategy struct {
	amounts *AmountNormalizer
}

func NewGenericStrategy(amounts *AmountNormalizer) *GenericStrategy {
	return &GenericStrategy{amounts: amounts}
}

func (s *GenericStrategy) Name() string { return "generic-boundary" }

// Keywords that mark a line as a header when checking the previous-line name
// fallback. Narrower than HeaderKeywords so short product lines above a bare
// price are not discarded.
var prevLineHeaderKeywords = []string{"item", "description", "qty", "price"}

func (s *GenericStrategy) Extract(doc *ocr.Document, _ constants.ReceiptType) []LineItem {
	tokens := doc.Tokens
	n := len(tokens)
	headerEnd, footerStart := itemBoundaries(tokens)

	var items []LineItem
	for i := headerEnd; i < footerStart && i < n; i++ {
		line := tokens[i].Text

		start, amountStr, ok := FindAmount(line)
		if !ok {
			continue
		}
		price := s.amounts.Normalize(amountStr)

		name := strings.TrimSpace(line[:start])
		if name == "" && i > 0 {
			prev := tokens[i-1].Text
			if _, _, prevHasPrice := FindAmount(prev); !prevHasPrice &&
				!containsAny(strings.ToLower(prev), prevLineHeaderKeywords) {
				name = prev
			}
		}
		if name == "" || !IsValidItemName(name) {
			continue
		}

		quantity := QuantityMarker(line)
		if q, cleaned := QuantityFromName(name); q > 1 {
			quantity = q
			name = cleaned
		}
		name = reLeadingDigits.ReplaceAllString(name, "")
		name = reAnyX.ReplaceAllString(name, "")
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
	return items
}

// itemBoundaries locates the token index range holding item lines. A missing
// header row defaults to max(5, 15% of the receipt); a missing footer to
// min(n-5, 85%).
func itemBoundaries(tokens []ocr.TextToken) (headerEnd, footerStart int) {
	n := len(tokens)

	headerEnd = 0
	for i, t := range tokens {
		if containsAny(strings.ToLower(t.Text), constants.HeaderKeywords) {
			headerEnd = i + 1
			break
		}
	}
	if headerEnd == 0 {
		headerEnd = max(5, int(float64(n)*0.15))
	}

	footerStart = n
	for i, t := range tokens {
		if containsAny(strings.ToLower(t.Text), constants.FooterKeywords) {
			footerStart = i
			break
		}
	}
	if footerStart == n {
		footerStart = min(n-5, int(float64(n)*0.85))
	}
	return headerEnd, footerStart
}
