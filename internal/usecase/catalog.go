package usecase

import (
	"context"
	"fmt"

	"github.com/polkiloo/iowasensors/internal/domain/model"
)

type CatalogBackend interface {
	Products(ctx context.Context) ([]model.Product, error)
}

// CatalogUseCase lists store products.
type CatalogUseCase struct {
	backend CatalogBackend
}

func NewCatalogUseCase(backend CatalogBackend) *CatalogUseCase {
	return &CatalogUseCase{backend: backend}
}

func (u *CatalogUseCase) Products(ctx context.Context) ([]model.Product, error) {
	products, err := u.backend.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}
