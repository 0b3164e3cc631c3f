package service

import (
	"context"
	"errors"
	"fmt"

	"overcooked-pos/pos-svc/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var maxDiscount = decimal.NewFromInt(100)

// BillLedger owns the monetary aggregate of a bill and the rules for opening,
// discounting, settling and deleting it.
type BillLedger struct {
	repo    BillRepository
	qr      QRGenerator
	taxRate decimal.Decimal
	logger  *zap.Logger
}

func NewBillLedger(repo BillRepository, qr QRGenerator, taxRate decimal.Decimal, logger *zap.Logger) *BillLedger {
	return &BillLedger{
		repo:    repo,
		qr:      qr,
		taxRate: taxRate,
		logger:  logger,
	}
}

func (l *BillLedger) CreateBill(ctx context.Context, tableNo, ownerID int) (*domain.Bill, error) {
	if tableNo < 1 {
		return nil, fmt.Errorf("%w: table number must be greater than 0", ErrValidation)
	}

	bill := domain.NewBill(tableNo, ownerID)
	if err := l.repo.CreateBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	bill.Orders = []domain.Order{}

	l.logger.Info("bill opened", zap.Int("bill_id", bill.ID), zap.Int("table_no", tableNo), zap.Int("owner_id", ownerID))
	return bill, nil
}

// GetBill returns the bill with its orders, or nil when the owner has no such bill.
func (l *BillLedger) GetBill(ctx context.Context, billID, ownerID int) (*domain.Bill, error) {
	bill, err := l.repo.GetBill(ctx, billID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bill: %w", err)
	}
	if !bill.OwnedBy(ownerID) {
		return nil, nil
	}

	orders, err := l.repo.ListOrders(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	bill.Orders = orders
	return bill, nil
}

func (l *BillLedger) ListUnsettledBills(ctx context.Context, ownerID int) ([]domain.Bill, error) {
	bills, err := l.repo.ListUnsettledBills(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list unsettled bills: %w", err)
	}

	for i := range bills {
		orders, err := l.repo.ListOrders(ctx, bills[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list orders of bill %d: %w", bills[i].ID, err)
		}
		bills[i].Orders = orders
	}
	return bills, nil
}

func (l *BillLedger) ApplyDiscount(ctx context.Context, billID, ownerID int, percent decimal.Decimal) (bool, error) {
	err := l.repo.WithinTx(ctx, func(tx LedgerTx) error {
		bill, err := lockOwnedBill(ctx, tx, billID, ownerID)
		if err != nil {
			return err
		}
		if bill.IsSettled {
			return ErrInvalidState
		}
		if percent.IsNegative() || percent.GreaterThan(maxDiscount) {
			return fmt.Errorf("%w: discount must be between 0 and 100", ErrValidation)
		}

		bill.Discount = percent
		bill.Recalculate(l.taxRate)
		return tx.UpdateBill(ctx, bill)
	})
	if errors.Is(err, errNothingToApply) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	l.logger.Info("discount applied", zap.Int("bill_id", billID), zap.String("discount", percent.String()))
	return true, nil
}

// SettleBill closes the bill. It reports false when the bill does not exist
// or is already settled.
func (l *BillLedger) SettleBill(ctx context.Context, billID, ownerID int) (bool, error) {
	err := l.repo.WithinTx(ctx, func(tx LedgerTx) error {
		bill, err := lockOwnedBill(ctx, tx, billID, ownerID)
		if err != nil {
			return err
		}
		if bill.IsSettled {
			return errNothingToApply
		}

		bill.IsSettled = true
		return tx.UpdateBill(ctx, bill)
	})
	if errors.Is(err, errNothingToApply) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	l.logger.Info("bill settled", zap.Int("bill_id", billID), zap.Int("owner_id", ownerID))
	return true, nil
}

func (l *BillLedger) DeleteBill(ctx context.Context, billID, ownerID int) (bool, error) {
	err := l.repo.WithinTx(ctx, func(tx LedgerTx) error {
		bill, err := lockOwnedBill(ctx, tx, billID, ownerID)
		if err != nil {
			return err
		}
		if bill.IsSettled {
			return ErrInvalidState
		}
		return tx.DeleteBill(ctx, billID)
	})
	if errors.Is(err, errNothingToApply) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	l.logger.Info("bill deleted", zap.Int("bill_id", billID), zap.Int("owner_id", ownerID))
	return true, nil
}

func (l *BillLedger) ReceiptQR(ctx context.Context, billID, ownerID int) ([]byte, error) {
	bill, err := l.repo.GetBill(ctx, billID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bill: %w", err)
	}
	if !bill.OwnedBy(ownerID) || l.qr == nil {
		return nil, nil
	}
	return l.qr.Generate(billID)
}

// lockOwnedBill reads the bill row under the transaction's lock and checks
// that it belongs to ownerID.
func lockOwnedBill(ctx context.Context, tx LedgerTx, billID, ownerID int) (*domain.Bill, error) {
	bill, err := tx.GetBillForUpdate(ctx, billID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errNothingToApply
	}
	if err != nil {
		return nil, err
	}
	if !bill.OwnedBy(ownerID) {
		return nil, ErrForbidden
	}
	return bill, nil
}
