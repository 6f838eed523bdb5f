package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-ecommerce/internal/domain/entity"
)

// UserRepository defines the persistence port for users.
type UserRepository interface {
	FindAll(ctx context.Context) ([]*entity.User, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// Create assigns a new identifier when u.ID is empty, then stores u.
	Create(ctx context.Context, u *entity.User) error
	// Save stores u under its existing identifier, replacing any previous version.
	Save(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}
