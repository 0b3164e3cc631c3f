package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"overcooked-pos/pos-svc/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DuplicatePolicy decides what AddOrder does when the bill already has a line
// for the same item and owner.
type DuplicatePolicy int

const (
	DuplicateReject DuplicatePolicy = iota
	DuplicateMerge
)

func ParseDuplicatePolicy(value string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "reject":
		return DuplicateReject, nil
	case "merge":
		return DuplicateMerge, nil
	default:
		return DuplicateReject, fmt.Errorf("unknown duplicate order policy %q", value)
	}
}

func (p DuplicatePolicy) String() string {
	if p == DuplicateMerge {
		return "merge"
	}
	return "reject"
}

// OrderBook maintains the order lines of a bill and keeps the bill aggregate
// in step with them.
type OrderBook struct {
	repo    BillRepository
	policy  DuplicatePolicy
	taxRate decimal.Decimal
	logger  *zap.Logger
}

func NewOrderBook(repo BillRepository, policy DuplicatePolicy, taxRate decimal.Decimal, logger *zap.Logger) *OrderBook {
	return &OrderBook{
		repo:    repo,
		policy:  policy,
		taxRate: taxRate,
		logger:  logger,
	}
}

func (o *OrderBook) AddOrder(ctx context.Context, billID, itemID, quantity, ownerID int) (bool, error) {
	if err := validateQuantity(quantity); err != nil {
		return false, err
	}

	err := o.repo.WithinTx(ctx, func(tx LedgerTx) error {
		bill, item, err := o.lockBillAndItem(ctx, tx, billID, itemID, ownerID)
		if err != nil {
			return err
		}

		lineTotal := item.LineTotal(quantity)
		existing, err := tx.GetOrder(ctx, billID, itemID, ownerID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			order := &domain.Order{
				BillID:   billID,
				ItemID:   itemID,
				OwnerID:  ownerID,
				Quantity: quantity,
				Total:    lineTotal,
			}
			if err := tx.InsertOrder(ctx, order); err != nil {
				return mapDuplicate(err)
			}
		case err != nil:
			return err
		case o.policy == DuplicateMerge:
			existing.Quantity += quantity
			existing.Total = existing.Total.Add(lineTotal)
			if err := tx.UpdateOrder(ctx, existing); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: item %d is already on bill %d", ErrConflict, itemID, billID)
		}

		bill.Total = bill.Total.Add(lineTotal)
		bill.Recalculate(o.taxRate)
		return tx.UpdateBill(ctx, bill)
	})
	if errors.Is(err, errNothingToApply) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	o.logger.Info("order added",
		zap.Int("bill_id", billID),
		zap.Int("item_id", itemID),
		zap.Int("quantity", quantity),
	)
	return true, nil
}

// UpdateOrder replaces the quantity of an existing line and reprices it at
// the item's current rate.
func (o *OrderBook) UpdateOrder(ctx context.Context, billID, itemID, quantity, ownerID int) (bool, error) {
	if err := validateQuantity(quantity); err != nil {
		return false, err
	}

	err := o.repo.WithinTx(ctx, func(tx LedgerTx) error {
		bill, item, err := o.lockBillAndItem(ctx, tx, billID, itemID, ownerID)
		if err != nil {
			return err
		}

		order, err := tx.GetOrder(ctx, billID, itemID, ownerID)
		if errors.Is(err, domain.ErrNotFound) {
			return errNothingToApply
		}
		if err != nil {
			return err
		}

		newTotal := item.LineTotal(quantity)
		bill.Total = bill.Total.Sub(order.Total).Add(newTotal)
		order.Quantity = quantity
		order.Total = newTotal

		if err := tx.UpdateOrder(ctx, order); err != nil {
			return err
		}
		bill.Recalculate(o.taxRate)
		return tx.UpdateBill(ctx, bill)
	})
	if errors.Is(err, errNothingToApply) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	o.logger.Info("order updated",
		zap.Int("bill_id", billID),
		zap.Int("item_id", itemID),
		zap.Int("quantity", quantity),
	)
	return true, nil
}

func (o *OrderBook) DeleteOrder(ctx context.Context, billID, itemID, ownerID int) (bool, error) {
	err := o.repo.WithinTx(ctx, func(tx LedgerTx) error {
		bill, err := lockOwnedBill(ctx, tx, billID, ownerID)
		if err != nil {
			return err
		}
		if bill.IsSettled {
			return ErrInvalidState
		}

		order, err := tx.GetOrder(ctx, billID, itemID, ownerID)
		if errors.Is(err, domain.ErrNotFound) {
			return errNothingToApply
		}
		if err != nil {
			return err
		}

		if err := tx.DeleteOrder(ctx, billID, itemID, ownerID); err != nil {
			return err
		}
		bill.Total = bill.Total.Sub(order.Total)
		bill.Recalculate(o.taxRate)
		return tx.UpdateBill(ctx, bill)
	})
	if errors.Is(err, errNothingToApply) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	o.logger.Info("order deleted", zap.Int("bill_id", billID), zap.Int("item_id", itemID))
	return true, nil
}

// lockBillAndItem loads both sides of an order line and applies the checks
// shared by add and update.
func (o *OrderBook) lockBillAndItem(ctx context.Context, tx LedgerTx, billID, itemID, ownerID int) (*domain.Bill, *domain.Item, error) {
	bill, err := tx.GetBillForUpdate(ctx, billID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, errNothingToApply
	}
	if err != nil {
		return nil, nil, err
	}

	item, err := tx.GetItem(ctx, itemID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, errNothingToApply
	}
	if err != nil {
		return nil, nil, err
	}

	if !bill.OwnedBy(ownerID) || !item.OwnedBy(ownerID) {
		return nil, nil, ErrForbidden
	}
	if bill.IsSettled {
		return nil, nil, ErrInvalidState
	}
	return bill, item, nil
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	return nil
}

func mapDuplicate(err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
