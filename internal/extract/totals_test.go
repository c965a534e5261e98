package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTotalsExtractor() *TotalsExtractor {
	return NewTotalsExtractor(NewAmountNormalizer(DefaultCorrectionThreshold, nil))
}

func TestTotalsExtract_AllFigures(t *testing.T) {
	text := "WARUNG MAKMUR\nSUBTOTAL 50.000\nPAJAK 5.000\nSERVICE CHARGE 2.500\nTOTAL 57.500"

	totals := newTotalsExtractor().Extract(text)

	require.NotNil(t, totals.Subtotal)
	assert.Equal(t, 50000.0, *totals.Subtotal)
	require.NotNil(t, totals.Tax)
	assert.Equal(t, 5000.0, *totals.Tax)
	require.NotNil(t, totals.ServiceCharge)
	assert.Equal(t, 2500.0, *totals.ServiceCharge)
	require.NotNil(t, totals.Total)
	assert.Equal(t, 57500.0, *totals.Total)
}

func TestTotalsExtract_TotalDoesNotMatchSubtotal(t *testing.T) {
	// "total" needs a leading boundary so SUBTOTAL alone never feeds it.
	totals := newTotalsExtractor().Extract("SUBTOTAL 50.000")

	require.NotNil(t, totals.Subtotal)
	assert.Equal(t, 50000.0, *totals.Subtotal)
	assert.Nil(t, totals.Total)
}

func TestTotalsExtract_MissingFiguresStayNil(t *testing.T) {
	totals := newTotalsExtractor().Extract("GOMACHI RESTO\n2 GYOZA 25.000\nTOTAL 25.000")

	assert.Nil(t, totals.Subtotal)
	assert.Nil(t, totals.Tax)
	assert.Nil(t, totals.ServiceCharge)
	require.NotNil(t, totals.Total)
	assert.Equal(t, 25000.0, *totals.Total)
}

func TestTotalsExtract_IndonesianTaxAliases(t *testing.T) {
	totals := newTotalsExtractor().Extract("PB1 10.000")
	require.NotNil(t, totals.Tax)
	assert.Equal(t, 10000.0, *totals.Tax)
}

func TestReconcileTotal_PrintedTotalWins(t *testing.T) {
	printed := 57500.0
	items := []LineItem{{Name: "GYOZA", Quantity: 2, Price: 25000}}

	got := ReconcileTotal(items, Totals{Total: &printed})
	assert.Equal(t, 57500.0, got)
}

func TestReconcileTotal_SumsItemsTaxAndService(t *testing.T) {
	tax := 5000.0
	service := 2500.0
	items := []LineItem{
		{Name: "NASI GORENG", Quantity: 1, Price: 25000},
		{Name: "ES TEH", Quantity: 2, Price: 10000},
	}

	got := ReconcileTotal(items, Totals{Tax: &tax, ServiceCharge: &service})
	assert.Equal(t, 42500.0, got)
}

func TestReconcileTotal_NoItemsNoFigures(t *testing.T) {
	assert.Equal(t, 0.0, ReconcileTotal(nil, Totals{}))
}
