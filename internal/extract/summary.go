package extract

import (
	"fmt"
	"strconv"
	"strings"
)

// Summary renders a result as the plain-text receipt summary: merchant,
// date/time, one line per item, then the footer figures. It is a
// presentation view only; nothing here feeds back into extraction.
func Summary(r *Result) string {
	if !r.Success {
		errMsg := r.Error
		if errMsg == "" {
			errMsg = "Unknown error"
		}
		return "Error: " + errMsg
	}

	var b strings.Builder
	b.WriteString("=== RECEIPT SUMMARY ===\n")
	fmt.Fprintf(&b, "Merchant: %s\n", r.MerchantName)
	if r.Date != "" || r.Time != "" {
		fmt.Fprintf(&b, "Date/Time: %s\n", strings.TrimSpace(r.Date+" "+r.Time))
	}
	b.WriteString("\nItems:\n")
	if len(r.Items) == 0 {
		b.WriteString("- No items detected\n")
	}
	for _, it := range r.Items {
		fmt.Fprintf(&b, "- %dx %s (%s): Rp%s\n", it.Quantity, it.Name, it.Category, FormatAmount(it.Price))
	}
	b.WriteString("\n")
	if r.Subtotal != nil {
		fmt.Fprintf(&b, "Subtotal: Rp%s\n", FormatAmount(*r.Subtotal))
	}
	if r.Tax != nil {
		fmt.Fprintf(&b, "Tax: Rp%s\n", FormatAmount(*r.Tax))
	}
	if r.ServiceCharge != nil {
		fmt.Fprintf(&b, "Service Charge: Rp%s\n", FormatAmount(*r.ServiceCharge))
	}
	fmt.Fprintf(&b, "Total: Rp%s\n", FormatAmount(r.Total))
	fmt.Fprintf(&b, "Payment Method: %s", r.PaymentMethod)
	return b.String()
}

// FormatAmount renders an amount with comma thousands separators and no
// decimals, the way the summary and exports print Rupiah.
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
