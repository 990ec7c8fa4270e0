package app

import (
	"context"
	"time"

	"github.com/nverma/medstock/internal/domain"
)

// ledgerTx is the slice of a repository needed to move stock between two
// ledger entries. Both methods must run against the transaction carried in
// ctx.
type ledgerTx interface {
	GetEntryForUpdate(ctx context.Context, ownerType domain.UserType, ownerID, productID string) (*domain.InventoryEntry, error)
	PutEntry(ctx context.Context, entry domain.InventoryEntry) error
}

// transferStock atomically decrements the distributor's entry and increments
// (creating if absent) the target owner's entry for the same product. The
// caller must already hold a transaction; on ErrInsufficientStock nothing is
// written.
func transferStock(ctx context.Context, repo ledgerTx, distributorID string, toOwnerID string, toOwnerType domain.UserType, productID string, quantity int, now time.Time) error {
	from, err := repo.GetEntryForUpdate(ctx, domain.UserTypeDistributor, distributorID, productID)
	if err != nil {
		return err
	}
	if from == nil || from.Quantity < quantity {
		return domain.ErrInsufficientStock
	}

	from.Quantity -= quantity
	from.UpdatedAt = now
	if err := repo.PutEntry(ctx, *from); err != nil {
		return err
	}

	to, err := repo.GetEntryForUpdate(ctx, toOwnerType, toOwnerID, productID)
	if err != nil {
		return err
	}
	if to == nil {
		to = &domain.InventoryEntry{
			OwnerID:   toOwnerID,
			OwnerType: toOwnerType,
			ProductID: productID,
		}
	}
	to.Quantity += quantity
	to.UpdatedAt = now
	return repo.PutEntry(ctx, *to)
}
