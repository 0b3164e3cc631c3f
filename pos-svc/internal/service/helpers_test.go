package service_test

import (
	"context"
	"testing"

	"overcooked-pos/pos-svc/internal/domain"
	"overcooked-pos/pos-svc/internal/service"
	"overcooked-pos/pos-svc/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	alice = 1
	bob   = 2
)

type fixture struct {
	ctx        context.Context
	repo       *storage.MemoryRepository
	ledger     *service.BillLedger
	orders     *service.OrderBook
	categoryID int
}

func newFixture(t *testing.T, policy service.DuplicatePolicy) *fixture {
	t.Helper()

	repo := storage.NewMemoryRepository()
	category := &domain.Category{Name: "MAINS"}
	require.NoError(t, repo.CreateCategory(context.Background(), category))

	return &fixture{
		ctx:        context.Background(),
		repo:       repo,
		ledger:     service.NewBillLedger(repo, nil, domain.DefaultTaxRate, zap.NewNop()),
		orders:     service.NewOrderBook(repo, policy, domain.DefaultTaxRate, zap.NewNop()),
		categoryID: category.ID,
	}
}

func (f *fixture) item(t *testing.T, ownerID int, rate string) int {
	t.Helper()

	item := &domain.Item{
		Name:       "Item",
		Rate:       decimal.RequireFromString(rate),
		CategoryID: f.categoryID,
		OwnerID:    ownerID,
	}
	require.NoError(t, f.repo.CreateItem(f.ctx, item))
	return item.ID
}

func (f *fixture) bill(t *testing.T, ownerID, tableNo int) int {
	t.Helper()

	bill, err := f.ledger.CreateBill(f.ctx, tableNo, ownerID)
	require.NoError(t, err)
	return bill.ID
}

// read loads the bill as stored, independent of ownership.
func (f *fixture) read(t *testing.T, billID int) *domain.Bill {
	t.Helper()

	bill, err := f.repo.GetBill(f.ctx, billID)
	require.NoError(t, err)
	orders, err := f.repo.ListOrders(f.ctx, billID)
	require.NoError(t, err)
	bill.Orders = orders
	return bill
}

func (f *fixture) add(t *testing.T, billID, itemID, quantity, ownerID int) {
	t.Helper()

	ok, err := f.orders.AddOrder(f.ctx, billID, itemID, quantity, ownerID)
	require.NoError(t, err)
	require.True(t, ok)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func assertAggregate(t *testing.T, bill *domain.Bill, total, offer, tax, net string) {
	t.Helper()
	assertDecimal(t, total, bill.Total, "total")
	assertDecimal(t, offer, bill.Offer, "offer")
	assertDecimal(t, tax, bill.Tax, "tax")
	assertDecimal(t, net, bill.NetAmount, "net amount")
}
