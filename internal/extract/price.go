package extract

import (
	"log/slog"
	"strconv"
	"strings"
)

// DefaultCorrectionThreshold is the amount below which a parsed value is
// assumed to have lost trailing zeros to OCR. Rupiah line prices are grouped
// in thousands, so a genuine sub-1000 price is rare enough to correct.
const DefaultCorrectionThreshold = 1000

// AmountNormalizer turns raw amount substrings into float values, resolving
// the Indonesian separator ambiguity ('.' thousands, ',' decimal) and
// applying the missing-zeros correction.
type AmountNormalizer struct {
	// CorrectionThreshold: positive values strictly below it are
	// multiplied by 1000. Zero disables the correction.
	CorrectionThreshold float64
	Logger              *slog.Logger
}

func NewAmountNormalizer(threshold float64, logger *slog.Logger) *AmountNormalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &AmountNormalizer{CorrectionThreshold: threshold, Logger: logger}
}

// Normalize parses an amount string that may carry a currency prefix,
// grouping characters, and mixed separators. Unparsable input degrades to 0
// with a warning; it never fails the caller.
func (n *AmountNormalizer) Normalize(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	s := b.String()

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		// European style: '.' groups thousands, ',' marks decimals.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		if strings.HasSuffix(s, ",00") || strings.HasSuffix(s, ",0") {
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		n.Logger.Warn("amount.parse_failed", "raw", raw, "cleaned", s)
		return 0
	}

	if n.CorrectionThreshold > 0 && v > 0 && v < n.CorrectionThreshold {
		v *= 1000
	}
	return v
}
