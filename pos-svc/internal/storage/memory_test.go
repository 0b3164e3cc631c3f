package storage

import (
	"context"
	"errors"
	"testing"

	"overcooked-pos/pos-svc/internal/domain"
	"overcooked-pos/pos-svc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMemory(t *testing.T) (*MemoryRepository, *domain.Bill, *domain.Item) {
	t.Helper()
	ctx := context.Background()
	repo := NewMemoryRepository()

	category := &domain.Category{Name: "MAINS"}
	require.NoError(t, repo.CreateCategory(ctx, category))
	item := &domain.Item{Name: "Stew", Rate: decimal.NewFromInt(6), CategoryID: category.ID, OwnerID: 1}
	require.NoError(t, repo.CreateItem(ctx, item))
	bill := domain.NewBill(2, 1)
	require.NoError(t, repo.CreateBill(ctx, bill))
	return repo, bill, item
}

func TestMemory_WithinTxDiscardsFailedWork(t *testing.T) {
	repo, bill, item := seedMemory(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.WithinTx(ctx, func(tx service.LedgerTx) error {
		if err := tx.InsertOrder(ctx, &domain.Order{BillID: bill.ID, ItemID: item.ID, OwnerID: 1, Quantity: 2, Total: decimal.NewFromInt(12)}); err != nil {
			return err
		}
		locked, err := tx.GetBillForUpdate(ctx, bill.ID)
		if err != nil {
			return err
		}
		locked.Total = decimal.NewFromInt(12)
		if err := tx.UpdateBill(ctx, locked); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	orders, err := repo.ListOrders(ctx, bill.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
	stored, err := repo.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.True(t, stored.Total.IsZero())
}

func TestMemory_WithinTxCommits(t *testing.T) {
	repo, bill, item := seedMemory(t)
	ctx := context.Background()

	err := repo.WithinTx(ctx, func(tx service.LedgerTx) error {
		return tx.InsertOrder(ctx, &domain.Order{BillID: bill.ID, ItemID: item.ID, OwnerID: 1, Quantity: 2, Total: decimal.NewFromInt(12)})
	})
	require.NoError(t, err)

	orders, err := repo.ListOrders(ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Stew", orders[0].ItemName)

	err = repo.WithinTx(ctx, func(tx service.LedgerTx) error {
		return tx.InsertOrder(ctx, &domain.Order{BillID: bill.ID, ItemID: item.ID, OwnerID: 1, Quantity: 1, Total: decimal.NewFromInt(6)})
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMemory_WithinTxHonoursCancelledContext(t *testing.T) {
	repo := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := repo.WithinTx(ctx, func(service.LedgerTx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestMemory_Uniqueness(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.CreateCategory(ctx, &domain.Category{Name: "DRINKS"}))
	assert.ErrorIs(t, repo.CreateCategory(ctx, &domain.Category{Name: "DRINKS"}), domain.ErrDuplicate)

	require.NoError(t, repo.CreateUser(ctx, &domain.User{Name: "A", Email: "a@b.co"}))
	assert.ErrorIs(t, repo.CreateUser(ctx, &domain.User{Name: "B", Email: "a@b.co"}), domain.ErrDuplicate)

	assert.ErrorIs(t, repo.CreateItem(ctx, &domain.Item{Name: "x", CategoryID: 42, OwnerID: 1}), domain.ErrNotFound)
}

func TestMemory_Cascades(t *testing.T) {
	repo, bill, item := seedMemory(t)
	ctx := context.Background()
	other := domain.NewBill(3, 1)
	require.NoError(t, repo.CreateBill(ctx, other))

	require.NoError(t, repo.WithinTx(ctx, func(tx service.LedgerTx) error {
		for _, billID := range []int{bill.ID, other.ID} {
			if err := tx.InsertOrder(ctx, &domain.Order{BillID: billID, ItemID: item.ID, OwnerID: 1, Quantity: 1, Total: decimal.NewFromInt(6)}); err != nil {
				return err
			}
		}
		return tx.DeleteBill(ctx, bill.ID)
	}))

	_, err := repo.GetBill(ctx, bill.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	orders, err := repo.ListOrders(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	affected, err := repo.DeleteItem(ctx, item.ID, 2)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.DeleteItem(ctx, item.ID, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
	orders, err = repo.ListOrders(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestMemory_UpdateUser(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	user := &domain.User{Name: "A", Email: "a@b.co", Password: "old"}
	require.NoError(t, repo.CreateUser(ctx, user))

	require.NoError(t, repo.ConfirmUser(ctx, user.ID))
	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new"))
	stored, err := repo.GetUserByEmail(ctx, "a@b.co")
	require.NoError(t, err)
	assert.True(t, stored.Confirmed)
	assert.Equal(t, "new", stored.Password)

	assert.ErrorIs(t, repo.ConfirmUser(ctx, 99), domain.ErrNotFound)
}
