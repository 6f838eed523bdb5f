package entity

import "github.com/shopspring/decimal"

func init() {
	// prices travel as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is the aggregate root for the products collection.
type Product struct {
	ID                 string          `json:"productId"`
	ProductName        string          `json:"productName"`
	ProductPreco       decimal.Decimal `json:"productPreco"`
	ProductDescription string          `json:"productDescription"`
	ProductType        string          `json:"productType"`
}

// Clone returns a copy of p.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
