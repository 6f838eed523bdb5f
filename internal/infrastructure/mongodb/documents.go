package mongodb

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/go-ddd-ecommerce/internal/domain/entity"
	"github.com/oksasatya/go-ddd-ecommerce/internal/domain/repository"
)

type addressDocument struct {
	Street  string `bson:"street"`
	City    string `bson:"city"`
	State   string `bson:"state"`
	ZipCode string `bson:"zipCode"`
}

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id"`
	UserName string             `bson:"userName"`
	Password string             `bson:"password"`
	Email    string             `bson:"email"`
	Address  *addressDocument   `bson:"address"`
}

type productDocument struct {
	ID                 primitive.ObjectID   `bson:"_id"`
	ProductName        string               `bson:"productName"`
	ProductPreco       primitive.Decimal128 `bson:"productPreco"`
	ProductDescription string               `bson:"productDescription"`
	ProductType        string               `bson:"productType"`
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", repository.ErrInvalidID, id)
	}
	return oid, nil
}

func toUserDocument(u *entity.User) (userDocument, error) {
	oid, err := objectID(u.ID)
	if err != nil {
		return userDocument{}, err
	}
	doc := userDocument{ID: oid, UserName: u.UserName, Password: u.Password, Email: u.Email}
	if u.Address != nil {
		doc.Address = &addressDocument{
			Street:  u.Address.Street,
			City:    u.Address.City,
			State:   u.Address.State,
			ZipCode: u.Address.ZipCode,
		}
	}
	return doc, nil
}

func (d userDocument) toEntity() *entity.User {
	u := &entity.User{ID: d.ID.Hex(), UserName: d.UserName, Password: d.Password, Email: d.Email}
	if d.Address != nil {
		u.Address = &entity.Address{
			Street:  d.Address.Street,
			City:    d.Address.City,
			State:   d.Address.State,
			ZipCode: d.Address.ZipCode,
		}
	}
	return u
}

func toProductDocument(p *entity.Product) (productDocument, error) {
	oid, err := objectID(p.ID)
	if err != nil {
		return productDocument{}, err
	}
	price, err := primitive.ParseDecimal128(p.ProductPreco.String())
	if err != nil {
		return productDocument{}, fmt.Errorf("productPreco %s: %w", p.ProductPreco, err)
	}
	return productDocument{
		ID:                 oid,
		ProductName:        p.ProductName,
		ProductPreco:       price,
		ProductDescription: p.ProductDescription,
		ProductType:        p.ProductType,
	}, nil
}

func (d productDocument) toEntity() (*entity.Product, error) {
	price, err := decimal.NewFromString(d.ProductPreco.String())
	if err != nil {
		return nil, fmt.Errorf("product %s: productPreco %s: %w", d.ID.Hex(), d.ProductPreco, err)
	}
	return &entity.Product{
		ID:                 d.ID.Hex(),
		ProductName:        d.ProductName,
		ProductPreco:       price,
		ProductDescription: d.ProductDescription,
		ProductType:        d.ProductType,
	}, nil
}
