package app

import (
	"context"
	"time"

	"github.com/nverma/medstock/internal/clock"
	"github.com/nverma/medstock/internal/domain"
)

type RequestRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateRequest(ctx context.Context, req domain.StockRequest) error
	GetRequestForUpdate(ctx context.Context, requestID string) (domain.StockRequest, error)
	MarkResponded(ctx context.Context, requestID string, at time.Time) error
	ListRequestsByDistributor(ctx context.Context, distributorID string) ([]domain.StockRequest, error)
	CreateOrder(ctx context.Context, order domain.Order) error
}

type RequestService struct {
	repo  RequestRepository
	dir   Directory
	clock clock.Clock
}

func NewRequestService(repo RequestRepository, dir Directory, clk clock.Clock) *RequestService {
	return &RequestService{
		repo:  repo,
		dir:   dir,
		clock: clk,
	}
}

type CreateRequestInput struct {
	DistributorID string
	RequesterID   string
	ContactName   string
	Pincode       string
	Mobile        string
}

// Create records a pending stock request from a requester to a distributor.
func (s *RequestService) Create(ctx context.Context, in CreateRequestInput) (domain.StockRequest, error) {
	distributor, err := s.dir.ResolveUser(ctx, in.DistributorID)
	if err != nil {
		return domain.StockRequest{}, err
	}
	if distributor.Type != domain.UserTypeDistributor {
		return domain.StockRequest{}, domain.ErrInvalidRole
	}
	requester, err := s.dir.ResolveUser(ctx, in.RequesterID)
	if err != nil {
		return domain.StockRequest{}, err
	}
	if !requester.Type.CanOrder() {
		return domain.StockRequest{}, domain.ErrInvalidRole
	}

	req := domain.StockRequest{
		ID:            newID(),
		DistributorID: in.DistributorID,
		RequesterID:   in.RequesterID,
		ContactName:   in.ContactName,
		Pincode:       in.Pincode,
		Mobile:        in.Mobile,
		Status:        domain.RequestStatusPending,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return domain.StockRequest{}, err
	}
	return req, nil
}

type RespondInput struct {
	RequestID string
	ProductID string
	Quantity  int
}

// Respond converts a pending request into an order in the "placed" state and
// marks the request responded. A request is converted at most once.
func (s *RequestService) Respond(ctx context.Context, in RespondInput) (domain.Order, error) {
	if in.Quantity <= 0 {
		return domain.Order{}, domain.ErrInvalidQuantity
	}
	if _, err := s.dir.ResolveProduct(ctx, in.ProductID); err != nil {
		return domain.Order{}, err
	}

	now := s.clock.Now()
	var order domain.Order

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		req, err := s.repo.GetRequestForUpdate(txCtx, in.RequestID)
		if err != nil {
			return err
		}
		if req.Status != domain.RequestStatusPending {
			return domain.ErrAlreadyResponded
		}

		order = domain.Order{
			ID:            newID(),
			DistributorID: req.DistributorID,
			OrdererID:     req.RequesterID,
			ProductID:     in.ProductID,
			Quantity:      in.Quantity,
			Status:        domain.OrderStatusPlaced,
			CreatedAt:     now,
		}
		if err := s.repo.CreateOrder(txCtx, order); err != nil {
			return err
		}
		return s.repo.MarkResponded(txCtx, req.ID, now)
	})
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// ListForDistributor returns requests addressed to the distributor, newest
// first.
func (s *RequestService) ListForDistributor(ctx context.Context, distributorID string) ([]domain.StockRequest, error) {
	distributor, err := s.dir.ResolveUser(ctx, distributorID)
	if err != nil {
		return nil, err
	}
	if distributor.Type != domain.UserTypeDistributor {
		return nil, domain.ErrInvalidRole
	}
	return s.repo.ListRequestsByDistributor(ctx, distributorID)
}
