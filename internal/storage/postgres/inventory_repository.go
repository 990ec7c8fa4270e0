package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nverma/medstock/internal/domain"
)

// Ledger entry statements shared with OrderRepository, which runs the
// delivery transfer against the same table.
const (
	entryForUpdateQuery = `
SELECT owner_id, owner_type, product_id, quantity, updated_at
FROM inventory
WHERE owner_type = $1 AND owner_id = $2 AND product_id = $3
FOR UPDATE`

	putEntryStmt = `
INSERT INTO inventory (owner_id, owner_type, product_id, quantity, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (owner_type, owner_id, product_id)
DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
)

type InventoryRepository struct {
	pool *pgxpool.Pool
}

func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

func (r *InventoryRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *InventoryRepository) GetEntryForUpdate(ctx context.Context, ownerType domain.UserType, ownerID, productID string) (*domain.InventoryEntry, error) {
	return scanEntryForUpdate(r.queryRow(ctx, entryForUpdateQuery, ownerType, ownerID, productID))
}

func (r *InventoryRepository) PutEntry(ctx context.Context, entry domain.InventoryEntry) error {
	_, err := r.exec(ctx, putEntryStmt,
		entry.OwnerID,
		entry.OwnerType,
		entry.ProductID,
		entry.Quantity,
		entry.UpdatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("put inventory entry: %w", err)
	}
	return nil
}

func (r *InventoryRepository) ListEntriesByOwner(ctx context.Context, ownerType domain.UserType, ownerID string) ([]domain.InventoryEntry, error) {
	const query = `
SELECT i.owner_id, i.owner_type, i.product_id, i.quantity, i.updated_at, p.name, p.unit_price
FROM inventory i
JOIN products p ON p.id = i.product_id
WHERE i.owner_type = $1 AND i.owner_id = $2
ORDER BY i.updated_at DESC`

	rows, err := r.query(ctx, query, ownerType, ownerID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		var e domain.InventoryEntry
		if err := rows.Scan(&e.OwnerID, &e.OwnerType, &e.ProductID, &e.Quantity, &e.UpdatedAt, &e.ProductName, &e.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan inventory entry: %w", err)
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate inventory: %w", rows.Err())
	}
	return entries, nil
}

func scanEntryForUpdate(row pgx.Row) (*domain.InventoryEntry, error) {
	var e domain.InventoryEntry
	err := row.Scan(&e.OwnerID, &e.OwnerType, &e.ProductID, &e.Quantity, &e.UpdatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory entry: %w", err)
	}
	return &e, nil
}

func (r *InventoryRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *InventoryRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *InventoryRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
