package app

import (
	"context"

	"github.com/nverma/medstock/internal/clock"
	"github.com/nverma/medstock/internal/domain"
)

type InventoryRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEntryForUpdate(ctx context.Context, ownerType domain.UserType, ownerID, productID string) (*domain.InventoryEntry, error)
	PutEntry(ctx context.Context, entry domain.InventoryEntry) error
	ListEntriesByOwner(ctx context.Context, ownerType domain.UserType, ownerID string) ([]domain.InventoryEntry, error)
}

type InventoryService struct {
	repo   InventoryRepository
	dir    Directory
	clock  clock.Clock
	events EventSink
}

func NewInventoryService(repo InventoryRepository, dir Directory, clk clock.Clock, opts ...InventoryServiceOption) *InventoryService {
	svc := &InventoryService{
		repo:  repo,
		dir:   dir,
		clock: clk,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type InventoryServiceOption func(*InventoryService)

// WithInventoryEvents attaches a sink notified after quantity changes commit.
func WithInventoryEvents(sink EventSink) InventoryServiceOption {
	return func(s *InventoryService) {
		s.events = sink
	}
}

type SetQuantityInput struct {
	OwnerID   string
	OwnerType domain.UserType
	ProductID string
	Quantity  int
}

// SetQuantity upserts the owner's ledger entry for a product, replacing any
// existing quantity.
func (s *InventoryService) SetQuantity(ctx context.Context, in SetQuantityInput) (domain.InventoryEntry, error) {
	if in.Quantity < 0 {
		return domain.InventoryEntry{}, domain.ErrInvalidQuantity
	}

	owner, err := s.dir.ResolveUser(ctx, in.OwnerID)
	if err != nil {
		return domain.InventoryEntry{}, err
	}
	if owner.Type != in.OwnerType {
		return domain.InventoryEntry{}, domain.ErrInvalidRole
	}
	if _, err := s.dir.ResolveProduct(ctx, in.ProductID); err != nil {
		return domain.InventoryEntry{}, err
	}

	entry := domain.InventoryEntry{
		OwnerID:   in.OwnerID,
		OwnerType: in.OwnerType,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UpdatedAt: s.clock.Now(),
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		return s.repo.PutEntry(txCtx, entry)
	})
	if err != nil {
		return domain.InventoryEntry{}, err
	}

	if s.events != nil {
		s.events.InventoryUpdated(entry)
	}
	return entry, nil
}

// ListInventory returns all ledger entries for the owner, with product
// details joined in.
func (s *InventoryService) ListInventory(ctx context.Context, ownerType domain.UserType, ownerID string) ([]domain.InventoryEntry, error) {
	owner, err := s.dir.ResolveUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner.Type != ownerType {
		return nil, domain.ErrInvalidRole
	}
	return s.repo.ListEntriesByOwner(ctx, ownerType, ownerID)
}
