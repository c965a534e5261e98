package constants

import "strings"

// PaymentMethod is the closed set of payment instruments recognized on
// Indonesian receipts, including the common e-wallets and banks.
type PaymentMethod string

const (
	PaymentCash      PaymentMethod = "CASH"
	PaymentCard      PaymentMethod = "CARD"
	PaymentDebit     PaymentMethod = "DEBIT"
	PaymentCredit    PaymentMethod = "CREDIT"
	PaymentQR        PaymentMethod = "QR_PAYMENT"
	PaymentOVO       PaymentMethod = "OVO"
	PaymentGoPay     PaymentMethod = "GOPAY"
	PaymentDana      PaymentMethod = "DANA"
	PaymentBCA       PaymentMethod = "BCA"
	PaymentMandiri   PaymentMethod = "MANDIRI"
	PaymentUnknown   PaymentMethod = "UNKNOWN"
)

type paymentKeywords struct {
	Method   PaymentMethod
	Keywords []string
}

// PaymentTable is ordered; the first method with a matching keyword wins.
var PaymentTable = []paymentKeywords{
	{PaymentCash, []string{"cash", "tunai", "uang tunai"}},
	{PaymentCard, []string{"card", "kartu", "edc"}},
	{PaymentDebit, []string{"debit"}},
	{PaymentCredit, []string{"credit", "kredit", "cc"}},
	{PaymentQR, []string{"qr", "qris"}},
	{PaymentOVO, []string{"ovo"}},
	{PaymentGoPay, []string{"gopay", "gojek"}},
	{PaymentDana, []string{"dana"}},
	{PaymentBCA, []string{"bca"}},
	{PaymentMandiri, []string{"mandiri"}},
}

// ClassifyPayment scans the full receipt text for payment keywords.
func ClassifyPayment(fullText string) PaymentMethod {
	lower := strings.ToLower(fullText)
	for _, pk := range PaymentTable {
		for _, kw := range pk.Keywords {
			if strings.Contains(lower, kw) {
				return pk.Method
			}
		}
	}
	return PaymentUnknown
}
