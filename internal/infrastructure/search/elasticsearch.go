package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-ddd-ecommerce/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// Index mirrors users and products into Elasticsearch and answers product searches.
type Index struct {
	ES            *elasticsearch.Client
	ProductsIndex string
	UsersIndex    string
}

func NewIndex(es *elasticsearch.Client, productsIndex, usersIndex string) *Index {
	return &Index{ES: es, ProductsIndex: productsIndex, UsersIndex: usersIndex}
}

// userDocument is what gets indexed for a user; the password never leaves the store.
type userDocument struct {
	ID       string          `json:"userId"`
	UserName string          `json:"userName"`
	Email    string          `json:"email"`
	Address  *entity.Address `json:"address,omitempty"`
}

func (i *Index) IndexProduct(ctx context.Context, p *entity.Product) error {
	return i.put(ctx, i.ProductsIndex, p.ID, p)
}

func (i *Index) IndexUser(ctx context.Context, u *entity.User) error {
	return i.put(ctx, i.UsersIndex, u.ID, userDocument{ID: u.ID, UserName: u.UserName, Email: u.Email, Address: u.Address})
}

func (i *Index) DeleteProduct(ctx context.Context, id string) error {
	return i.delete(ctx, i.ProductsIndex, id)
}

func (i *Index) DeleteUser(ctx context.Context, id string) error {
	return i.delete(ctx, i.UsersIndex, id)
}

// SearchProducts runs a multi_match over name, description and type. An empty
// query matches everything.
func (i *Index) SearchProducts(ctx context.Context, q string, size int) ([]*entity.Product, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{"match_all": map[string]any{}}
	if q != "" {
		query = map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"productName^2", "productDescription", "productType"},
			},
		}
	}
	b, err := json.Marshal(map[string]any{"query": query, "size": size})
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := i.ES.Search(
		i.ES.Search.WithContext(c),
		i.ES.Search.WithIndex(i.ProductsIndex),
		i.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", i.ProductsIndex, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]*entity.Product, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		p := h.Source
		out = append(out, &p)
	}
	return out, nil
}

func (i *Index) put(ctx context.Context, index, id string, doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: index, DocumentID: id, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index %s/%s: %s", index, id, res.Status())
	}
	return nil
}

// delete ignores documents that are already gone.
func (i *Index) delete(ctx context.Context, index, id string) error {
	req := esapi.DeleteRequest{Index: index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete %s/%s: %s", index, id, res.Status())
	}
	return nil
}
