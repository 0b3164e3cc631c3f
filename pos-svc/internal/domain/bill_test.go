package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBill_Recalculate(t *testing.T) {
	tests := []struct {
		name      string
		total     string
		discount  string
		taxRate   string
		wantOffer string
		wantTax   string
		wantNet   string
	}{
		{name: "empty bill", total: "0", discount: "0", taxRate: "0.05", wantOffer: "0", wantTax: "0", wantNet: "0"},
		{name: "no discount", total: "30", discount: "0", taxRate: "0.05", wantOffer: "0", wantTax: "1.5", wantNet: "31.5"},
		{name: "ten percent off", total: "30", discount: "10", taxRate: "0.05", wantOffer: "3", wantTax: "1.5", wantNet: "28.5"},
		{name: "fully discounted", total: "50", discount: "100", taxRate: "0.05", wantOffer: "50", wantTax: "2.5", wantNet: "2.5"},
		{name: "fractional discount", total: "19.99", discount: "12.5", taxRate: "0.05", wantOffer: "2.49875", wantTax: "0.9995", wantNet: "18.49075"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			bill := NewBill(1, 1)
			bill.Total = decimal.RequireFromString(testCase.total)
			bill.Discount = decimal.RequireFromString(testCase.discount)

			bill.Recalculate(decimal.RequireFromString(testCase.taxRate))

			assert.Equal(t, testCase.wantOffer, bill.Offer.String())
			assert.Equal(t, testCase.wantTax, bill.Tax.String())
			assert.Equal(t, testCase.wantNet, bill.NetAmount.String())
		})
	}
}

func TestBill_RecalculateDoesNotCompound(t *testing.T) {
	bill := NewBill(4, 1)
	bill.Total = decimal.NewFromInt(80)
	bill.Discount = decimal.NewFromInt(25)

	bill.Recalculate(DefaultTaxRate)
	first := bill.NetAmount
	bill.Recalculate(DefaultTaxRate)
	bill.Recalculate(DefaultTaxRate)

	assert.True(t, first.Equal(bill.NetAmount))
	assert.Equal(t, "64", bill.NetAmount.String())
}

func TestItem_LineTotal(t *testing.T) {
	item := &Item{Rate: decimal.RequireFromString("2.35")}

	assert.Equal(t, "7.05", item.LineTotal(3).String())
	assert.Equal(t, "0", (&Item{Rate: decimal.Zero}).LineTotal(10).String())
}

func TestOwnership(t *testing.T) {
	bill := NewBill(2, 7)
	item := &Item{OwnerID: 7}

	assert.True(t, bill.OwnedBy(7))
	assert.False(t, bill.OwnedBy(8))
	assert.True(t, item.OwnedBy(7))
	assert.False(t, item.OwnedBy(9))
}
