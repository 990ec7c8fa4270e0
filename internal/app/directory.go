package app

import (
	"context"

	"github.com/nverma/medstock/internal/domain"
)

// Directory resolves users and products by id. User types and products are
// immutable, so lookups do not need to happen inside the callers'
// transactions.
type Directory interface {
	ResolveUser(ctx context.Context, id string) (domain.User, error)
	ResolveProduct(ctx context.Context, id string) (domain.Product, error)
}
