package app

import (
	"context"
	"time"

	"github.com/nverma/medstock/internal/clock"
	"github.com/nverma/medstock/internal/domain"
)

type OrderRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateOrder(ctx context.Context, order domain.Order) error
	GetOrderForUpdate(ctx context.Context, orderID string) (domain.Order, error)
	SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, at time.Time) error
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	GetEntryForUpdate(ctx context.Context, ownerType domain.UserType, ownerID, productID string) (*domain.InventoryEntry, error)
	PutEntry(ctx context.Context, entry domain.InventoryEntry) error
}

type OrderService struct {
	repo   OrderRepository
	dir    Directory
	clock  clock.Clock
	events EventSink
}

func NewOrderService(repo OrderRepository, dir Directory, clk clock.Clock, opts ...OrderServiceOption) *OrderService {
	svc := &OrderService{
		repo:  repo,
		dir:   dir,
		clock: clk,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type OrderServiceOption func(*OrderService)

// WithOrderEvents attaches a sink notified after deliveries commit.
func WithOrderEvents(sink EventSink) OrderServiceOption {
	return func(s *OrderService) {
		s.events = sink
	}
}

type PlaceOrderInput struct {
	DistributorID string
	OrdererID     string
	ProductID     string
	Quantity      int
}

// Place creates an order in the "placed" state. The stock check here is
// advisory; delivery re-checks against the ledger at that moment.
func (s *OrderService) Place(ctx context.Context, in PlaceOrderInput) (domain.Order, error) {
	if in.Quantity <= 0 {
		return domain.Order{}, domain.ErrInvalidQuantity
	}

	distributor, err := s.dir.ResolveUser(ctx, in.DistributorID)
	if err != nil {
		return domain.Order{}, err
	}
	if distributor.Type != domain.UserTypeDistributor {
		return domain.Order{}, domain.ErrInvalidRole
	}
	orderer, err := s.dir.ResolveUser(ctx, in.OrdererID)
	if err != nil {
		return domain.Order{}, err
	}
	if !orderer.Type.CanOrder() {
		return domain.Order{}, domain.ErrInvalidRole
	}
	if _, err := s.dir.ResolveProduct(ctx, in.ProductID); err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:            newID(),
		DistributorID: in.DistributorID,
		OrdererID:     in.OrdererID,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		Status:        domain.OrderStatusPlaced,
		CreatedAt:     s.clock.Now(),
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		entry, err := s.repo.GetEntryForUpdate(txCtx, domain.UserTypeDistributor, in.DistributorID, in.ProductID)
		if err != nil {
			return err
		}
		if entry == nil || entry.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}
		return s.repo.CreateOrder(txCtx, order)
	})
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

type AdvanceOrderInput struct {
	OrderID       string
	Status        domain.OrderStatus
	DistributorID string
}

// Advance moves the order to the requested status, which must be the single
// legal successor of its current status. The transition to "delivered" also
// moves the ordered quantity from the distributor's ledger entry to the
// orderer's; if stock is insufficient the whole call fails and the order
// keeps its current status.
func (s *OrderService) Advance(ctx context.Context, in AdvanceOrderInput) (domain.Order, error) {
	now := s.clock.Now()
	var result domain.Order

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		order, err := s.repo.GetOrderForUpdate(txCtx, in.OrderID)
		if err != nil {
			return err
		}
		if order.DistributorID != in.DistributorID {
			return domain.ErrUnauthorized
		}

		next, ok := domain.NextStatus(order.Status)
		if !ok || in.Status != next {
			return domain.ErrIllegalTransition
		}

		if next == domain.OrderStatusDelivered {
			orderer, err := s.dir.ResolveUser(txCtx, order.OrdererID)
			if err != nil {
				return err
			}
			if err := transferStock(txCtx, s.repo, order.DistributorID, order.OrdererID, orderer.Type, order.ProductID, order.Quantity, now); err != nil {
				return err
			}
		}

		if err := s.repo.SetOrderStatus(txCtx, order.ID, next, now); err != nil {
			return err
		}

		order.Status = next
		switch next {
		case domain.OrderStatusAccepted:
			order.AcceptedAt = &now
		case domain.OrderStatusDispatched:
			order.DispatchedAt = &now
		case domain.OrderStatusDelivered:
			order.DeliveredAt = &now
		}
		result = order
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	if s.events != nil && result.Status == domain.OrderStatusDelivered {
		s.events.OrderDelivered(result)
	}
	return result, nil
}

// List returns orders matching the filter, newest first.
func (s *OrderService) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx, filter)
}
