package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nverma/medstock/internal/domain"
)

// DirectoryRepository resolves users and products for role and existence
// checks.
type DirectoryRepository struct {
	pool *pgxpool.Pool
}

func NewDirectoryRepository(pool *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{pool: pool}
}

func (r *DirectoryRepository) ResolveUser(ctx context.Context, id string) (domain.User, error) {
	const query = `SELECT id, username, password_hash, user_type, created_at FROM users WHERE id = $1`

	var u domain.User
	var userType string
	err := r.queryRow(ctx, query, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &userType, &u.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.User{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("resolve user: %w", err)
	}
	u.Type = domain.UserType(userType)
	return u, nil
}

func (r *DirectoryRepository) ResolveProduct(ctx context.Context, id string) (domain.Product, error) {
	const query = `SELECT id, name, description, unit_price, created_at FROM products WHERE id = $1`

	var p domain.Product
	err := r.queryRow(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.UnitPrice, &p.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Product{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("resolve product: %w", err)
	}
	return p, nil
}

func (r *DirectoryRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
