package storage

import (
	"context"

	"overcooked-pos/pos-svc/internal/domain"
)

const billSelect = `
	SELECT id, table_no, owner_id, is_settled, total, discount, offer, tax, net_amount, created_at, updated_at
	FROM bills`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBill(row rowScanner) (*domain.Bill, error) {
	var bill domain.Bill
	if err := row.Scan(
		&bill.ID, &bill.TableNo, &bill.OwnerID, &bill.IsSettled,
		&bill.Total, &bill.Discount, &bill.Offer, &bill.Tax, &bill.NetAmount,
		&bill.CreatedAt, &bill.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &bill, nil
}

func getBill(ctx context.Context, q queryer, query string, args ...any) (*domain.Bill, error) {
	bill, err := scanBill(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return bill, nil
}

func updateBill(ctx context.Context, q queryer, bill *domain.Bill) error {
	return q.QueryRowContext(ctx, `
		UPDATE bills
		SET is_settled = $1, total = $2, discount = $3, offer = $4, tax = $5, net_amount = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`,
		bill.IsSettled, bill.Total, bill.Discount, bill.Offer, bill.Tax, bill.NetAmount, bill.ID).
		Scan(&bill.UpdatedAt)
}

func (r *PostgresRepository) CreateBill(ctx context.Context, bill *domain.Bill) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO bills (table_no, owner_id, is_settled, total, discount, offer, tax, net_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		bill.TableNo, bill.OwnerID, bill.IsSettled, bill.Total, bill.Discount, bill.Offer, bill.Tax, bill.NetAmount).
		Scan(&bill.ID, &bill.CreatedAt, &bill.UpdatedAt)
}

func (r *PostgresRepository) GetBill(ctx context.Context, billID int) (*domain.Bill, error) {
	return getBill(ctx, r.DB, billSelect+" WHERE id = $1", billID)
}

func (r *PostgresRepository) ListUnsettledBills(ctx context.Context, ownerID int) ([]domain.Bill, error) {
	rows, err := r.DB.QueryContext(ctx, billSelect+`
		WHERE owner_id = $1 AND NOT is_settled
		ORDER BY table_no, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := []domain.Bill{}
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, *bill)
	}
	return bills, rows.Err()
}

// ListOrders returns the lines of a bill joined with the name and current
// rate of their item.
func (r *PostgresRepository) ListOrders(ctx context.Context, billID int) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT o.bill_id, o.item_id, o.owner_id, o.quantity, o.total, i.name, i.rate
		FROM orders o
		JOIN items i ON o.item_id = i.id
		WHERE o.bill_id = $1
		ORDER BY o.item_id`, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.BillID, &order.ItemID, &order.OwnerID, &order.Quantity, &order.Total, &order.ItemName, &order.ItemRate); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
