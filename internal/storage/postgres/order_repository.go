package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nverma/medstock/internal/domain"
)

const insertOrderStmt = `
INSERT INTO orders (id, distributor_id, orderer_id, product_id, quantity, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	_, err := r.exec(ctx, insertOrderStmt,
		order.ID,
		order.DistributorID,
		order.OrdererID,
		order.ProductID,
		order.Quantity,
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetOrderForUpdate(ctx context.Context, orderID string) (domain.Order, error) {
	const query = `
SELECT id, distributor_id, orderer_id, product_id, quantity, status, created_at, accepted_at, dispatched_at, delivered_at
FROM orders
WHERE id = $1
FOR UPDATE`

	var o domain.Order
	var status string
	err := r.queryRow(ctx, query, orderID).
		Scan(&o.ID, &o.DistributorID, &o.OrdererID, &o.ProductID, &o.Quantity, &status, &o.CreatedAt, &o.AcceptedAt, &o.DispatchedAt, &o.DeliveredAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Order{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("get order: %w", err)
	}
	o.Status = domain.OrderStatus(status)
	return o, nil
}

func (r *OrderRepository) SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, at time.Time) error {
	var col string
	switch status {
	case domain.OrderStatusAccepted:
		col = "accepted_at"
	case domain.OrderStatusDispatched:
		col = "dispatched_at"
	case domain.OrderStatusDelivered:
		col = "delivered_at"
	default:
		return domain.ErrIllegalTransition
	}

	stmt := fmt.Sprintf(`UPDATE orders SET status = $2, %s = $3 WHERE id = $1`, col)
	tag, err := r.exec(ctx, stmt, orderID, status, at)
	if err != nil {
		return fmt.Errorf("set order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	query := `
SELECT o.id, o.distributor_id, d.username, o.orderer_id, u.username, u.user_type,
       o.product_id, p.name, o.quantity, o.status, o.created_at, o.accepted_at, o.dispatched_at, o.delivered_at
FROM orders o
JOIN users d ON d.id = o.distributor_id
JOIN users u ON u.id = o.orderer_id
JOIN products p ON p.id = o.product_id`

	var args []any
	var conds []string
	addCond := func(expr string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}
	if filter.DistributorID != "" {
		addCond("o.distributor_id = $%d", filter.DistributorID)
	}
	if filter.OrdererID != "" {
		addCond("o.orderer_id = $%d", filter.OrdererID)
	}
	if filter.Status != "" {
		addCond("o.status = $%d", string(filter.Status))
	}
	for i, cond := range conds {
		if i == 0 {
			query += "\nWHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += "\nORDER BY o.created_at DESC"

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var status, ordererType string
		if err := rows.Scan(
			&o.ID, &o.DistributorID, &o.DistributorName, &o.OrdererID, &o.OrdererName, &ordererType,
			&o.ProductID, &o.ProductName, &o.Quantity, &status, &o.CreatedAt, &o.AcceptedAt, &o.DispatchedAt, &o.DeliveredAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status = domain.OrderStatus(status)
		o.OrdererType = domain.UserType(ordererType)
		orders = append(orders, o)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate orders: %w", rows.Err())
	}
	return orders, nil
}

func (r *OrderRepository) GetEntryForUpdate(ctx context.Context, ownerType domain.UserType, ownerID, productID string) (*domain.InventoryEntry, error) {
	return scanEntryForUpdate(r.queryRow(ctx, entryForUpdateQuery, ownerType, ownerID, productID))
}

func (r *OrderRepository) PutEntry(ctx context.Context, entry domain.InventoryEntry) error {
	_, err := r.exec(ctx, putEntryStmt,
		entry.OwnerID,
		entry.OwnerType,
		entry.ProductID,
		entry.Quantity,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("put inventory entry: %w", err)
	}
	return nil
}

func (r *OrderRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *OrderRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *OrderRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
