package storage

import (
	"context"

	"overcooked-pos/pos-svc/internal/domain"
)

func getItem(ctx context.Context, q queryer, itemID int) (*domain.Item, error) {
	var item domain.Item
	err := q.QueryRowContext(ctx, `
		SELECT i.id, i.name, i.rate, i.category_id, c.name, i.owner_id, i.created_at, i.updated_at
		FROM items i
		JOIN categories c ON i.category_id = c.id
		WHERE i.id = $1`, itemID).
		Scan(&item.ID, &item.Name, &item.Rate, &item.CategoryID, &item.CategoryName, &item.OwnerID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &item, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	err := r.DB.QueryRowContext(ctx,
		"INSERT INTO categories (name) VALUES ($1) RETURNING id", category.Name).
		Scan(&category.ID)
	return mapError(err)
}

func (r *PostgresRepository) GetCategory(ctx context.Context, categoryID int) (*domain.Category, error) {
	var category domain.Category
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM categories WHERE id = $1", categoryID).
		Scan(&category.ID, &category.Name)
	if err != nil {
		return nil, mapError(err)
	}
	return &category, nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) CreateItem(ctx context.Context, item *domain.Item) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO items (name, rate, category_id, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		item.Name, item.Rate, item.CategoryID, item.OwnerID).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *PostgresRepository) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	return getItem(ctx, r.DB, itemID)
}

// ListItems returns the owner's items. A non-empty search narrows the result
// to names containing it, ignoring case.
func (r *PostgresRepository) ListItems(ctx context.Context, ownerID int, search string) ([]domain.Item, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT i.id, i.name, i.rate, i.category_id, c.name, i.owner_id, i.created_at, i.updated_at
		FROM items i
		JOIN categories c ON i.category_id = c.id
		WHERE i.owner_id = $1 AND ($2::text = '' OR i.name ILIKE '%' || $2::text || '%')
		ORDER BY i.id`, ownerID, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Rate, &item.CategoryID, &item.CategoryName, &item.OwnerID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item *domain.Item) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE items
		SET name = $1, rate = $2, category_id = $3, updated_at = NOW()
		WHERE id = $4 AND owner_id = $5
		RETURNING updated_at`,
		item.Name, item.Rate, item.CategoryID, item.ID, item.OwnerID).
		Scan(&item.UpdatedAt)
	return mapError(err)
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, itemID, ownerID int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM items WHERE id = $1 AND owner_id = $2", itemID, ownerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
