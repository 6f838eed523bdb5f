package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-ecommerce/internal/domain/entity"
	"github.com/oksasatya/go-ddd-ecommerce/internal/domain/repository"
)

// ProductRepository stores products in process memory.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
	newID    func() string
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]*entity.Product), newID: uuid.NewString}
}

func (r *ProductRepository) FindAll(_ context.Context) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProductRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

func (r *ProductRepository) FindByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = r.newID()
	}
	return r.Save(ctx, p)
}

func (r *ProductRepository) Save(_ context.Context, p *entity.Product) error {
	if p.ID == "" {
		return repository.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p.Clone()
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
