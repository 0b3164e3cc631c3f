package storage

import (
	"context"

	"overcooked-pos/pos-svc/internal/domain"
)

const userSelect = "SELECT id, name, email, password, confirmed, created_at, updated_at FROM users"

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Confirmed, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, confirmed, created_at, updated_at`,
		user.Name, user.Email, user.Password).
		Scan(&user.ID, &user.Confirmed, &user.CreatedAt, &user.UpdatedAt)
	return mapError(err)
}

func (r *PostgresRepository) GetUser(ctx context.Context, userID int) (*domain.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, userSelect+" WHERE id = $1", userID))
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, userSelect+" WHERE email = $1", email))
}

func (r *PostgresRepository) ConfirmUser(ctx context.Context, userID int) error {
	return r.updateUser(ctx, "UPDATE users SET confirmed = TRUE, updated_at = NOW() WHERE id = $1", userID)
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, userID int, hash string) error {
	return r.updateUser(ctx, "UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1", userID, hash)
}

func (r *PostgresRepository) updateUser(ctx context.Context, query string, args ...any) error {
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
