package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

var (
	DefaultTaxRate = decimal.RequireFromString("0.05")
	hundred        = decimal.NewFromInt(100)
)

// NewBill returns an open bill with a zeroed aggregate.
func NewBill(tableNo, ownerID int) *Bill {
	return &Bill{
		TableNo:   tableNo,
		OwnerID:   ownerID,
		Total:     decimal.Zero,
		Discount:  decimal.Zero,
		Offer:     decimal.Zero,
		Tax:       decimal.Zero,
		NetAmount: decimal.Zero,
	}
}

// Recalculate derives Offer, Tax and NetAmount from Total and Discount.
// Every value is recomputed from Total, never from the previous NetAmount.
func (b *Bill) Recalculate(taxRate decimal.Decimal) {
	b.Offer = b.Total.Mul(b.Discount).Div(hundred)
	b.Tax = b.Total.Mul(taxRate)
	b.NetAmount = b.Total.Add(b.Tax).Sub(b.Offer)
}

func (b *Bill) OwnedBy(ownerID int) bool {
	return b.OwnerID == ownerID
}

// LineTotal is the price of quantity units of the item at its current rate.
func (i *Item) LineTotal(quantity int) decimal.Decimal {
	return i.Rate.Mul(decimal.NewFromInt(int64(quantity)))
}

func (i *Item) OwnedBy(ownerID int) bool {
	return i.OwnerID == ownerID
}
