package constants

// ReceiptType is the closed classification of a receipt's issuing merchant.
// It selects the item-extraction strategy for the document.
type ReceiptType string

const (
	Gomachi   ReceiptType = "GOMACHI"
	Chatime   ReceiptType = "CHATIME"
	SushiGo   ReceiptType = "SUSHIGO"
	HokBen    ReceiptType = "HOKBEN"
	Indomaret ReceiptType = "INDOMARET"
	WarungCe  ReceiptType = "WARUNG_CE"
	Unknown   ReceiptType = "UNKNOWN"
)

// TypeSignature pairs a receipt type with the lowercase substrings that
// identify it in receipt text. Aliases include common OCR misreads of the
// merchant name ("gemachi", "chatine").
type TypeSignature struct {
	Type    ReceiptType
	Aliases []string
}

// TypeSignatures is ordered; the first matching signature wins.
var TypeSignatures = []TypeSignature{
	{Gomachi, []string{"gomachi", "japanese ramen", "gemachi"}},
	{Chatime, []string{"chatime", "milk tea", "chatine"}},
	{SushiGo, []string{"sushigo", "one price sushi"}},
	{HokBen, []string{"hokben", "hoka ichiman"}},
	{Indomaret, []string{"indomaret", "indomarco"}},
	{WarungCe, []string{"warung ce", "goldfinch"}},
}

// MerchantAliases holds the case-sensitive name fragments looked for in the
// top tokens of a receipt when its type is already known. DisplayName, when
// set, replaces the raw token text in the result.
var MerchantAliases = map[ReceiptType]struct {
	Needles     []string
	DisplayName string
}{
	Gomachi:   {Needles: []string{"Gomachi", "GOMACHI", "Gemachi"}, DisplayName: "Gomachi"},
	Chatime:   {Needles: []string{"Chatime", "CHATIME", "Chatine"}, DisplayName: "Chatime"},
	SushiGo:   {Needles: []string{"SUSHIGO", "Sushigo"}},
	HokBen:    {Needles: []string{"HOKBEN", "HokBen"}},
	Indomaret: {Needles: []string{"INDOMARET", "Indomaret"}},
	WarungCe:  {Needles: []string{"Warung Ce", "WARUNG CE"}},
}
