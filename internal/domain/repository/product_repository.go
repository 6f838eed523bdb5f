package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-ecommerce/internal/domain/entity"
)

// ProductRepository defines the persistence port for products.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]*entity.Product, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, p *entity.Product) error
	Save(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}
