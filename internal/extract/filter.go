package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/adepratama/receipt-extractor/constants"
)

var nonItemPrefixPatterns = compilePrefixes(constants.NonItemPrefixes)

func compilePrefixes(exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// IsValidItemName separates genuine item names from receipt boilerplate.
// It is a pure blacklist: a candidate survives only if nothing marks it as a
// total, tax, payment, header, address, date, time, or postal-code line.
// Shared by every extraction strategy.
func IsValidItemName(text string) bool {
	if utf8.RuneCountInString(text) < 2 {
		return false
	}
	if reDigitsOnly.MatchString(text) {
		return false
	}
	if reCurrencyPrefixed.MatchString(text) {
		return false
	}

	lower := strings.ToLower(text)
	for _, re := range nonItemPrefixPatterns {
		if re.MatchString(lower) {
			return false
		}
	}
	for _, kw := range constants.NonItemKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}

	if reNumericDate.MatchString(text) {
		return false
	}
	if reTime.MatchString(text) {
		return false
	}
	// A 5-digit run is a postal code, not a product.
	if rePostalCode.MatchString(text) {
		return false
	}

	// "less" is a quantity modifier fragment ("SUGAR LESS"), not an item.
	words := strings.Fields(strings.TrimSpace(text))
	if len(words) > 0 && strings.ToLower(words[0]) == "less" {
		return false
	}
	if len(words) == 2 && strings.ToLower(words[1]) == "less" {
		return false
	}

	return true
}
