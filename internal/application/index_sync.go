package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-ecommerce/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-ecommerce/internal/domain/repository"
	"github.com/oksasatya/go-ddd-ecommerce/pkg/events"
	"github.com/oksasatya/go-ddd-ecommerce/pkg/helpers"
)

// ErrUnknownEvent marks events the sync cannot apply; retrying will not help.
var ErrUnknownEvent = errors.New("unknown entity event")

// SearchIndex is satisfied by *search.Index.
type SearchIndex interface {
	IndexProduct(ctx context.Context, p *entity.Product) error
	IndexUser(ctx context.Context, u *entity.User) error
	DeleteProduct(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error
}

// IndexSync mirrors entity events into the search index.
type IndexSync struct {
	Index    SearchIndex
	Users    repo.UserRepository
	Products repo.ProductRepository
	Logger   *logrus.Logger
}

func NewIndexSync(index SearchIndex, users repo.UserRepository, products repo.ProductRepository, logger *logrus.Logger) *IndexSync {
	return &IndexSync{Index: index, Users: users, Products: products, Logger: logger}
}

// Apply indexes or removes the entity carried by ev.
func (s *IndexSync) Apply(ctx context.Context, ev events.EntityEvent) error {
	switch ev.Type {
	case events.Created, events.Updated:
		return s.upsert(ctx, ev)
	case events.Deleted:
		switch ev.Entity {
		case events.User:
			return s.Index.DeleteUser(ctx, ev.ID)
		case events.Product:
			return s.Index.DeleteProduct(ctx, ev.ID)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownEvent, ev.Key())
}

func (s *IndexSync) upsert(ctx context.Context, ev events.EntityEvent) error {
	switch ev.Entity {
	case events.User:
		var u entity.User
		if err := json.Unmarshal(ev.Data, &u); err != nil {
			return fmt.Errorf("%w: %s payload: %v", ErrUnknownEvent, ev.Key(), err)
		}
		return s.Index.IndexUser(ctx, &u)
	case events.Product:
		var p entity.Product
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			return fmt.Errorf("%w: %s payload: %v", ErrUnknownEvent, ev.Key(), err)
		}
		return s.Index.IndexProduct(ctx, &p)
	}
	return fmt.Errorf("%w: %s", ErrUnknownEvent, ev.Key())
}

// Reindex pushes every stored user and product into the search index.
func (s *IndexSync) Reindex(ctx context.Context) (users, products int, err error) {
	allUsers, err := s.Users.FindAll(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, u := range allUsers {
		if err := s.Index.IndexUser(ctx, u); err != nil {
			return users, products, fmt.Errorf("index user %s: %w", u.ID, err)
		}
		users++
	}

	allProducts, err := s.Products.FindAll(ctx)
	if err != nil {
		return users, 0, err
	}
	for _, p := range allProducts {
		if err := s.Index.IndexProduct(ctx, p); err != nil {
			return users, products, fmt.Errorf("index product %s: %w", p.ID, err)
		}
		products++
	}

	helpers.LogInfo(s.Logger, "reindex finished", logrus.Fields{"users": users, "products": products})
	return users, products, nil
}
