package extract

import (
	"strings"

	"github.com/adepratama/receipt-extractor/constants"
	"github.com/adepratama/receipt-extractor/internal/ocr"
)

// ClassifyReceipt tags the receipt with its issuing merchant by
// case-insensitive substring search against the signature table. The first
// matching signature wins; unmatched text is Unknown.
func ClassifyReceipt(fullText string) constants.ReceiptType {
	lower := strings.ToLower(fullText)
	for _, sig := range constants.TypeSignatures {
		for _, alias := range sig.Aliases {
			if strings.Contains(lower, alias) {
				return sig.Type
			}
		}
	}
	return constants.Unknown
}

// merchantScanDepth bounds how far down the sorted tokens the name search
// goes; merchant names print at the top of a receipt.
const merchantScanDepth = 5

// MerchantName extracts the merchant name from the top of the document. For
// a known receipt type it returns the first top token carrying one of the
// type's aliases (or the type's canonical display name). Otherwise it falls
// back to the first token's text, or "Unknown Merchant" for an empty
// document.
func MerchantName(doc *ocr.Document, receiptType constants.ReceiptType) string {
	aliases, known := constants.MerchantAliases[receiptType]
	if known {
		limit := min(merchantScanDepth, len(doc.Tokens))
		for i := 0; i < limit; i++ {
			text := doc.Tokens[i].Text
			for _, needle := range aliases.Needles {
				if strings.Contains(text, needle) {
					if aliases.DisplayName != "" {
						return aliases.DisplayName
					}
					return text
				}
			}
		}
	}
	if len(doc.Tokens) > 0 {
		return doc.Tokens[0].Text
	}
	return "Unknown Merchant"
}
