package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Compiled once at startup; every pattern is read-only afterwards.
var (
	// reDate captures DD[-/.]MM[-/.]YY(YY) or "DD MonthName YYYY".
	reDate = regexp.MustCompile(`\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}|\d{1,2}\s+[A-Za-z]+\s+\d{2,4}`)
	// reTime captures HH:MM with optional seconds.
	reTime = regexp.MustCompile(`\d{1,2}:\d{2}(?::\d{2})?`)
	// reAmount captures a Rupiah-style amount: optional Rp prefix, then
	// digit groups separated by '.' or ','. A plain ungrouped number does
	// not match; every printed amount on these receipts carries at least
	// one separator.
	reAmount = regexp.MustCompile(`(?:Rp\.?)?\s*(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{0,3}))`)
	// reQuantityX finds an explicit "<digits> x" quantity marker.
	reQuantityX = regexp.MustCompile(`(\d+)\s*[xX]`)
	// reLeadingQuantity splits a leading digit run off an item name, as in
	// "2GYOZA" or "4 PIRING".
	reLeadingQuantity = regexp.MustCompile(`^(\d+)\s*(.+)$`)

	reLeadingDigits = regexp.MustCompile(`^\d+\s*`)
	reAnyX          = regexp.MustCompile(`\s*[xX]\s*`)
	reLeadingQtyX   = regexp.MustCompile(`^\d+\s*[xX]\s*`)
	reBareNumber    = regexp.MustCompile(`^\s*\d+(?:[.,]\d+)*\s*$`)

	// Validity-filter patterns: anything matching these is boilerplate.
	// The date check is numeric-only on purpose; the month-name form of
	// reDate would swallow quantity-name-amount lines like "2 GYOZA 25".
	reCurrencyPrefixed = regexp.MustCompile(`Rp\.?\s*\d+`)
	reDigitsOnly       = regexp.MustCompile(`^\d+(\s*\d+)*$`)
	reNumericDate      = regexp.MustCompile(`\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}`)
	rePostalCode       = regexp.MustCompile(`\d{5}`)
)

// FindAmount returns the position of the first amount match in line and its
// captured numeric substring. ok is false when the line holds no amount.
func FindAmount(line string) (start int, amount string, ok bool) {
	loc := reAmount.FindStringSubmatchIndex(line)
	if loc == nil {
		return 0, "", false
	}
	return loc[0], line[loc[2]:loc[3]], true
}

// QuantityMarker returns the value of a "<digits> x" marker in line, or 1.
func QuantityMarker(line string) int {
	if m := reQuantityX.FindStringSubmatch(line); m != nil {
		if q, err := strconv.Atoi(m[1]); err == nil && q >= 1 {
			return q
		}
	}
	return 1
}

// QuantityFromName reinterprets a leading digit run as a quantity, returning
// the quantity and the remaining name. Names without a leading digit run
// come back unchanged with quantity 1.
func QuantityFromName(name string) (int, string) {
	if m := reLeadingQuantity.FindStringSubmatch(name); m != nil {
		if q, err := strconv.Atoi(m[1]); err == nil && q >= 1 {
			return q, m[2]
		}
	}
	return 1, name
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
