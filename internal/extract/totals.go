package extract

import "regexp"

const amountExpr = `(?:Rp\.?)?\s*(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{0,3}))`

// Each footer figure has its own anchored pattern so the disambiguation
// rules stay independently testable. "total" requires a preceding line break
// or space so it never matches inside "subtotal".
var (
	reSubtotalLine = regexp.MustCompile(`(?i)(?:subtotal|sub\s*total).*?` + amountExpr)
	reTaxLine      = regexp.MustCompile(`(?i)(?:tax|pajak|pb1).*?` + amountExpr)
	reServiceLine  = regexp.MustCompile(`(?i)(?:service|charge).*?` + amountExpr)
	reTotalLine    = regexp.MustCompile(`(?i)(?:^|\s)total.*?` + amountExpr)
)

// TotalsExtractor locates the printed subtotal, tax, service-charge, and
// total amounts in receipt text.
type TotalsExtractor struct {
	amounts *AmountNormalizer
}

func NewTotalsExtractor(amounts *AmountNormalizer) *TotalsExtractor {
	return &TotalsExtractor{amounts: amounts}
}

// Extract runs the four independent keyword patterns over the full text.
// Figures without a matching line stay nil.
func (t *TotalsExtractor) Extract(fullText string) Totals {
	find := func(re *regexp.Regexp) *float64 {
		m := re.FindStringSubmatch(fullText)
		if m == nil {
			return nil
		}
		v := t.amounts.Normalize(m[1])
		return &v
	}
	return Totals{
		Subtotal:      find(reSubtotalLine),
		Tax:           find(reTaxLine),
		ServiceCharge: find(reServiceLine),
		Total:         find(reTotalLine),
	}
}

// ReconcileTotal returns the printed total when one was extracted, otherwise
// the sum of item prices plus whatever tax and service charge were found.
func ReconcileTotal(items []LineItem, totals Totals) float64 {
	if totals.Total != nil {
		return *totals.Total
	}
	var sum float64
	for _, it := range items {
		sum += it.Price
	}
	if totals.Tax != nil {
		sum += *totals.Tax
	}
	if totals.ServiceCharge != nil {
		sum += *totals.ServiceCharge
	}
	return sum
}
