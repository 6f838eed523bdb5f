package application

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-ecommerce/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-ecommerce/internal/domain/repository"
	"github.com/oksasatya/go-ddd-ecommerce/pkg/events"
)

var ErrProductNotFound = errors.New("product not found")

// ProductSearcher is satisfied by *search.Index.
type ProductSearcher interface {
	SearchProducts(ctx context.Context, q string, size int) ([]*entity.Product, error)
}

type ProductService struct {
	Repo     repo.ProductRepository
	Events   EventPublisher
	Searcher ProductSearcher
	Logger   *logrus.Logger
}

func NewProductService(repo repo.ProductRepository, pub EventPublisher, searcher ProductSearcher, logger *logrus.Logger) *ProductService {
	return &ProductService{Repo: repo, Events: pub, Searcher: searcher, Logger: logger}
}

func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.Repo.Count(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Repo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	recordWrite(ctx, s.Events, s.Logger, events.Created, events.Product, p.ID, p)
	return p, nil
}

// Update looks the product up before decoding fields, so a missing id
// reports not found even when a field is badly typed.
func (s *ProductService) Update(ctx context.Context, id string, fields map[string]json.RawMessage) (*entity.Product, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch, err := entity.DecodeProductPatch(fields)
	if err != nil {
		return nil, err
	}
	updated := entity.ApplyProductPatch(current, patch)
	if err := s.Repo.Save(ctx, updated); err != nil {
		return nil, err
	}
	recordWrite(ctx, s.Events, s.Logger, events.Updated, events.Product, updated.ID, updated)
	return updated, nil
}

// Delete removes the product if it exists. A missing id is not an error.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil
		}
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	recordWrite(ctx, s.Events, s.Logger, events.Deleted, events.Product, id, nil)
	return nil
}

// Search returns an empty result when no search backend is configured.
func (s *ProductService) Search(ctx context.Context, q string, size int) ([]*entity.Product, error) {
	if s.Searcher == nil {
		return []*entity.Product{}, nil
	}
	return s.Searcher.SearchProducts(ctx, q, size)
}
