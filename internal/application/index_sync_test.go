package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-ecommerce/internal/domain/entity"
	"github.com/oksasatya/go-ddd-ecommerce/internal/infrastructure/memory"
	"github.com/oksasatya/go-ddd-ecommerce/pkg/events"
)

type fakeIndex struct {
	users           map[string]*entity.User
	products        map[string]*entity.Product
	deletedUsers    []string
	deletedProducts []string
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{users: map[string]*entity.User{}, products: map[string]*entity.Product{}}
}

func (f *fakeIndex) IndexProduct(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeIndex) IndexUser(_ context.Context, u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeIndex) DeleteProduct(_ context.Context, id string) error {
	f.deletedProducts = append(f.deletedProducts, id)
	return nil
}

func (f *fakeIndex) DeleteUser(_ context.Context, id string) error {
	f.deletedUsers = append(f.deletedUsers, id)
	return nil
}

func TestIndexSync_Apply(t *testing.T) {
	ctx := context.Background()
	idx := newFakeIndex()
	sync := NewIndexSync(idx, nil, nil, nil)

	created, err := events.New(events.Created, events.Product, "p1", &entity.Product{ID: "p1", ProductName: "Mouse", ProductPreco: decimal.RequireFromString("9.99")})
	require.NoError(t, err)
	require.NoError(t, sync.Apply(ctx, created))
	require.Contains(t, idx.products, "p1")
	assert.True(t, decimal.RequireFromString("9.99").Equal(idx.products["p1"].ProductPreco))

	updated, err := events.New(events.Updated, events.User, "u1", &entity.User{ID: "u1", UserName: "ana"})
	require.NoError(t, err)
	require.NoError(t, sync.Apply(ctx, updated))
	assert.Equal(t, "ana", idx.users["u1"].UserName)

	deleted, err := events.New(events.Deleted, events.User, "u1", nil)
	require.NoError(t, err)
	require.NoError(t, sync.Apply(ctx, deleted))
	assert.Equal(t, []string{"u1"}, idx.deletedUsers)
}

func TestIndexSync_ApplyUnknown(t *testing.T) {
	sync := NewIndexSync(newFakeIndex(), nil, nil, nil)

	err := sync.Apply(context.Background(), events.EntityEvent{Type: "archived", Entity: events.User, ID: "u1"})
	assert.ErrorIs(t, err, ErrUnknownEvent)

	err = sync.Apply(context.Background(), events.EntityEvent{Type: events.Created, Entity: "order", ID: "o1"})
	assert.ErrorIs(t, err, ErrUnknownEvent)

	err = sync.Apply(context.Background(), events.EntityEvent{Type: events.Created, Entity: events.Product, ID: "p1", Data: []byte(`"oops"`)})
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestIndexSync_Reindex(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	products := memory.NewProductRepository()
	require.NoError(t, users.Create(ctx, &entity.User{UserName: "ana"}))
	require.NoError(t, products.Create(ctx, &entity.Product{ProductName: "Mouse"}))
	require.NoError(t, products.Create(ctx, &entity.Product{ProductName: "Keyboard"}))
	idx := newFakeIndex()

	nu, np, err := NewIndexSync(idx, users, products, nil).Reindex(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, nu)
	assert.Equal(t, 2, np)
	assert.Len(t, idx.users, 1)
	assert.Len(t, idx.products, 2)
}
