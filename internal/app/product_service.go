package app

import (
	"context"

	"github.com/nverma/medstock/internal/clock"
	"github.com/nverma/medstock/internal/domain"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product domain.Product) error
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type ProductService struct {
	repo  ProductRepository
	clock clock.Clock
}

func NewProductService(repo ProductRepository, clk clock.Clock) *ProductService {
	return &ProductService{
		repo:  repo,
		clock: clk,
	}
}

type CreateProductInput struct {
	Name        string
	Description string
	UnitPrice   float64
}

// Create adds a catalog product. Products cannot be changed afterwards.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	if in.Name == "" {
		return domain.Product{}, domain.ErrNameRequired
	}
	if in.UnitPrice <= 0 {
		return domain.Product{}, domain.ErrInvalidUnitPrice
	}

	product := domain.Product{
		ID:          newID(),
		Name:        in.Name,
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, productID string) (domain.Product, error) {
	return s.repo.GetProduct(ctx, productID)
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}
