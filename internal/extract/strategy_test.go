package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adepratama/receipt-extractor/constants"
	"github.com/adepratama/receipt-extractor/internal/ocr"
)

// makeDoc builds a document from line texts, one token per line, stacked
// top-to-bottom.
func makeDoc(texts ...string) *ocr.Document {
	tokens := make([]ocr.TextToken, len(texts))
	for i, text := range texts {
		y := float64(i * 20)
		tokens[i] = ocr.TextToken{
			Text: text,
			BoundingBox: [4]ocr.Point{
				{X: 0, Y: y}, {X: 100, Y: y},
				{X: 100, Y: y + 15}, {X: 0, Y: y + 15},
			},
			Confidence: 0.95,
		}
	}
	return ocr.NewDocument(tokens)
}

func newTestAmounts() *AmountNormalizer {
	return NewAmountNormalizer(DefaultCorrectionThreshold, nil)
}

func TestGenericStrategy_BoundedRegion(t *testing.T) {
	doc := makeDoc(
		"WARUNG MAKMUR",
		"Jakarta Selatan",
		"ITEM QTY PRICE",
		"NASI GORENG 25.000",
		"2 x ES TEH 10.000",
		"KERUPUK 5.000",
		"TOTAL 40.000",
		"TUNAI 50.000",
	)

	items := NewGenericStrategy(newTestAmounts()).Extract(doc, constants.Unknown)
	require.Len(t, items, 3)

	assert.Equal(t, "NASI GORENG", items[0].Name)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 25000.0, items[0].Price)
	assert.Equal(t, constants.Food, items[0].Category)

	assert.Equal(t, "ES TEH", items[1].Name)
	assert.Equal(t, 2, items[1].Quantity)
	assert.Equal(t, 10000.0, items[1].Price)
	assert.Equal(t, constants.Beverage, items[1].Category)

	assert.Equal(t, "KERUPUK", items[2].Name)
	assert.Equal(t, 5000.0, items[2].Price)
}

func TestGenericStrategy_PreviousLineName(t *testing.T) {
	doc := makeDoc(
		"WARUNG MAKMUR",
		"Jakarta Selatan",
		"ITEM QTY PRICE",
		"AYAM BAKAR",
		"35.000",
		"TOTAL 35.000",
	)

	items := NewGenericStrategy(newTestAmounts()).Extract(doc, constants.Unknown)
	require.Len(t, items, 1)
	assert.Equal(t, "AYAM BAKAR", items[0].Name)
	assert.Equal(t, 35000.0, items[0].Price)
}

func TestGenericStrategy_BoilerplateFiltered(t *testing.T) {
	doc := makeDoc(
		"WARUNG MAKMUR",
		"Jakarta Selatan",
		"ITEM QTY PRICE",
		"DISC 10% 2.500",
		"PPN 11% 3.000",
		"TOTAL 5.500",
	)

	items := NewGenericStrategy(newTestAmounts()).Extract(doc, constants.Unknown)
	assert.Empty(t, items)
}

func TestBeverageStrategy_StrictPattern(t *testing.T) {
	doc := makeDoc(
		"CHATIME",
		"STORE 042",
		"1 x Brown Sugar Milk Tea (L) 28.000",
		"SUGAR LESS",
		"TOTAL 28.000",
	)

	items := NewBeverageStrategy(newTestAmounts()).Extract(doc, constants.Chatime)
	require.Len(t, items, 1)
	assert.Equal(t, "Brown Sugar Milk Tea (SUGAR LESS)", items[0].Name)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 28000.0, items[0].Price)
	assert.Equal(t, constants.Beverage, items[0].Category)
}

func TestBeverageStrategy_MultipleItems(t *testing.T) {
	doc := makeDoc(
		"CHATIME",
		"2 x Taro Milk Tea (M) 24.000",
		"1 x Lemon Juice (L) 18.000",
		"TOTAL 66.000",
	)

	items := NewBeverageStrategy(newTestAmounts()).Extract(doc, constants.Chatime)
	require.Len(t, items, 2)
	assert.Equal(t, "Taro Milk Tea", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 24000.0, items[0].Price)
	assert.Equal(t, "Lemon Juice", items[1].Name)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestBeverageStrategy_LoosePassPriceOnNextLine(t *testing.T) {
	// Degraded scan: the amount lands on its own line, so the strict
	// pattern never fires and the loose pass has to recover the item.
	doc := makeDoc(
		"CHATIME",
		"2 x Taro Milk Tea",
		"24.000",
		"TOTAL 24.000",
	)

	items := NewBeverageStrategy(newTestAmounts()).Extract(doc, constants.Chatime)
	require.Len(t, items, 1)
	assert.Equal(t, "Taro Milk Tea", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 24000.0, items[0].Price)
	assert.Equal(t, constants.Beverage, items[0].Category)
}

func TestBeverageStrategy_LoosePassSameLinePrice(t *testing.T) {
	// A hyphenated name defeats the strict pattern but keeps the amount
	// on the item line.
	doc := makeDoc(
		"CHATIME",
		"2 x Kopi-Susu 18.000",
		"TOTAL 36.000",
	)

	items := NewBeverageStrategy(newTestAmounts()).Extract(doc, constants.Chatime)
	require.Len(t, items, 1)
	assert.Equal(t, "Kopi-Susu", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 18000.0, items[0].Price)
	assert.Equal(t, constants.Beverage, items[0].Category)
}

func TestTextLineStrategy_SkipsHeaderAndFooter(t *testing.T) {
	doc := makeDoc(
		"WARUNG MAKMUR",
		"Jakarta Selatan",
		"05/08/2023",
		"MIE AYAM 20.000",
		"TOTAL 20.000",
	)

	items := NewTextLineStrategy(newTestAmounts()).Extract(doc, constants.Unknown)
	require.Len(t, items, 1)
	assert.Equal(t, "MIE AYAM", items[0].Name)
	assert.Equal(t, 20000.0, items[0].Price)
	assert.Equal(t, constants.Food, items[0].Category)
}

func TestTextLineStrategy_GomachiLiteralScan(t *testing.T) {
	// The item sits in the skipped top lines, so only the dish-name scan can
	// recover it, taking the price from the following line.
	doc := makeDoc(
		"GOMACHI",
		"2 GYOZA",
		"25.000",
		"TERIMA KASIH",
	)

	items := NewTextLineStrategy(newTestAmounts()).Extract(doc, constants.Gomachi)
	require.Len(t, items, 1)
	assert.Equal(t, "GYOZA", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 25000.0, items[0].Price)
	assert.Equal(t, constants.Food, items[0].Category)
}

func TestTextLineStrategy_SushiGoPlateScan(t *testing.T) {
	// Plate-count lines carry no food keyword, so the scan must force the
	// category as well as find the line.
	doc := makeDoc(
		"SUSHIGO",
		"4 PIRING 60.000",
		"TOTAL 60.000",
	)

	items := NewTextLineStrategy(newTestAmounts()).Extract(doc, constants.SushiGo)
	require.Len(t, items, 1)
	assert.Equal(t, "PIRING", items[0].Name)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, 60000.0, items[0].Price)
	assert.Equal(t, constants.Food, items[0].Category)
}

func TestEngine_DedicatedStrategyIsAuthoritative(t *testing.T) {
	// A Chatime receipt that matches no beverage line stays empty; the engine
	// must not fall through to the generic strategies.
	doc := makeDoc(
		"CHATIME",
		"STORE 042",
		"ITEM QTY PRICE",
		"NASI GORENG 25.000",
		"TOTAL 25.000",
	)

	engine := NewEngine(newTestAmounts(), nil)
	items := engine.Extract(doc, constants.Chatime)
	assert.Empty(t, items)
}

func TestEngine_FallbackChain(t *testing.T) {
	// Too few tokens for the boundary strategy, so the text-line fallback
	// runs the dish-name scan.
	doc := makeDoc(
		"GOMACHI RESTO",
		"2 GYOZA 25.000",
		"TOTAL 25.000",
	)

	engine := NewEngine(newTestAmounts(), nil)
	items := engine.Extract(doc, constants.Gomachi)
	require.Len(t, items, 1)
	assert.Equal(t, "GYOZA", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
}
