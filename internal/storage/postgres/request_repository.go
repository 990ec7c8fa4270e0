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

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func (r *RequestRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *RequestRepository) CreateRequest(ctx context.Context, req domain.StockRequest) error {
	const stmt = `
INSERT INTO stock_requests (id, distributor_id, requester_id, contact_name, pincode, mobile, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(ctx, stmt,
		req.ID,
		req.DistributorID,
		req.RequesterID,
		req.ContactName,
		req.Pincode,
		req.Mobile,
		req.Status,
		req.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("create stock request: %w", err)
	}
	return nil
}

func (r *RequestRepository) GetRequestForUpdate(ctx context.Context, requestID string) (domain.StockRequest, error) {
	const query = `
SELECT id, distributor_id, requester_id, contact_name, pincode, mobile, status, created_at, responded_at
FROM stock_requests
WHERE id = $1
FOR UPDATE`

	var req domain.StockRequest
	var status string
	err := r.queryRow(ctx, query, requestID).
		Scan(&req.ID, &req.DistributorID, &req.RequesterID, &req.ContactName, &req.Pincode, &req.Mobile, &status, &req.CreatedAt, &req.RespondedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.StockRequest{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.StockRequest{}, domain.ErrRequestNotFound
		}
		return domain.StockRequest{}, fmt.Errorf("get stock request: %w", err)
	}
	req.Status = domain.RequestStatus(status)
	return req, nil
}

func (r *RequestRepository) MarkResponded(ctx context.Context, requestID string, at time.Time) error {
	const stmt = `UPDATE stock_requests SET status = $2, responded_at = $3 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, requestID, domain.RequestStatusResponded, at)
	if err != nil {
		return fmt.Errorf("mark request responded: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (r *RequestRepository) ListRequestsByDistributor(ctx context.Context, distributorID string) ([]domain.StockRequest, error) {
	const query = `
SELECT r.id, r.distributor_id, r.requester_id, r.contact_name, r.pincode, r.mobile, r.status, r.created_at, r.responded_at,
       u.username, u.user_type
FROM stock_requests r
JOIN users u ON u.id = r.requester_id
WHERE r.distributor_id = $1
ORDER BY r.created_at DESC`

	rows, err := r.query(ctx, query, distributorID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list stock requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.StockRequest
	for rows.Next() {
		var req domain.StockRequest
		var status, requesterType string
		if err := rows.Scan(
			&req.ID, &req.DistributorID, &req.RequesterID, &req.ContactName, &req.Pincode, &req.Mobile,
			&status, &req.CreatedAt, &req.RespondedAt, &req.RequesterName, &requesterType,
		); err != nil {
			return nil, fmt.Errorf("scan stock request: %w", err)
		}
		req.Status = domain.RequestStatus(status)
		req.RequesterType = domain.UserType(requesterType)
		requests = append(requests, req)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate stock requests: %w", rows.Err())
	}
	return requests, nil
}

// CreateOrder inserts the order produced by responding to a request. Same
// statement as OrderRepository; responding happens in the request tx.
func (r *RequestRepository) CreateOrder(ctx context.Context, order domain.Order) error {
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

func (r *RequestRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *RequestRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *RequestRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
