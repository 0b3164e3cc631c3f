package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"overcooked-pos/pos-svc/internal/domain"
	"overcooked-pos/pos-svc/internal/service"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

var (
	_ service.BillRepository     = (*PostgresRepository)(nil)
	_ service.ItemRepository     = (*PostgresRepository)(nil)
	_ service.CategoryRepository = (*PostgresRepository)(nil)
	_ service.UserRepository     = (*PostgresRepository)(nil)
	_ service.LedgerTx           = (*postgresTx)(nil)
)

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			confirmed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE CHECK (char_length(name) >= 3)
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			rate NUMERIC NOT NULL CHECK (rate >= 0),
			category_id INT NOT NULL REFERENCES categories(id),
			owner_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS bills (
			id SERIAL PRIMARY KEY,
			table_no INT NOT NULL CHECK (table_no >= 1),
			owner_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			is_settled BOOLEAN NOT NULL DEFAULT FALSE,
			total NUMERIC NOT NULL DEFAULT 0,
			discount NUMERIC NOT NULL DEFAULT 0 CHECK (discount >= 0 AND discount <= 100),
			offer NUMERIC NOT NULL DEFAULT 0,
			tax NUMERIC NOT NULL DEFAULT 0,
			net_amount NUMERIC NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			bill_id INT NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
			item_id INT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
			owner_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			quantity INT NOT NULL CHECK (quantity >= 1),
			total NUMERIC NOT NULL,
			PRIMARY KEY (bill_id, item_id, owner_id)
		)`,
		"CREATE INDEX IF NOT EXISTS bills_owner_open_idx ON bills (owner_id, table_no) WHERE NOT is_settled",
		"CREATE INDEX IF NOT EXISTS items_owner_idx ON items (owner_id)",
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

// WithinTx runs fn inside a database transaction. Bill reads made through the
// transaction take a row lock that is held until commit or rollback.
func (r *PostgresRepository) WithinTx(ctx context.Context, fn func(tx service.LedgerTx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&postgresTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

type postgresTx struct {
	tx *sql.Tx
}

func (t *postgresTx) GetBillForUpdate(ctx context.Context, billID int) (*domain.Bill, error) {
	return getBill(ctx, t.tx, billSelect+" WHERE id = $1 FOR UPDATE", billID)
}

func (t *postgresTx) UpdateBill(ctx context.Context, bill *domain.Bill) error {
	return updateBill(ctx, t.tx, bill)
}

func (t *postgresTx) DeleteBill(ctx context.Context, billID int) error {
	_, err := t.tx.ExecContext(ctx, "DELETE FROM bills WHERE id = $1", billID)
	return err
}

func (t *postgresTx) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	return getItem(ctx, t.tx, itemID)
}

func (t *postgresTx) GetOrder(ctx context.Context, billID, itemID, ownerID int) (*domain.Order, error) {
	var order domain.Order
	err := t.tx.QueryRowContext(ctx, `
		SELECT bill_id, item_id, owner_id, quantity, total
		FROM orders
		WHERE bill_id = $1 AND item_id = $2 AND owner_id = $3
		FOR UPDATE`, billID, itemID, ownerID).
		Scan(&order.BillID, &order.ItemID, &order.OwnerID, &order.Quantity, &order.Total)
	if err != nil {
		return nil, mapError(err)
	}
	return &order, nil
}

func (t *postgresTx) InsertOrder(ctx context.Context, order *domain.Order) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO orders (bill_id, item_id, owner_id, quantity, total)
		VALUES ($1, $2, $3, $4, $5)`,
		order.BillID, order.ItemID, order.OwnerID, order.Quantity, order.Total)
	return mapError(err)
}

func (t *postgresTx) UpdateOrder(ctx context.Context, order *domain.Order) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE orders SET quantity = $1, total = $2
		WHERE bill_id = $3 AND item_id = $4 AND owner_id = $5`,
		order.Quantity, order.Total, order.BillID, order.ItemID, order.OwnerID)
	return err
}

func (t *postgresTx) DeleteOrder(ctx context.Context, billID, itemID, ownerID int) error {
	_, err := t.tx.ExecContext(ctx,
		"DELETE FROM orders WHERE bill_id = $1 AND item_id = $2 AND owner_id = $3",
		billID, itemID, ownerID)
	return err
}

// mapError translates driver errors into the domain sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, pqErr.Constraint)
	}
	return err
}
