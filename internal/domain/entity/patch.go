package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrTypeMismatch is matched by every *TypeMismatchError.
var ErrTypeMismatch = errors.New("type mismatch")

// TypeMismatchError reports an update value whose JSON type does not fit the field.
type TypeMismatchError struct {
	Field string
	Want  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %s must be %s", e.Field, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// AddressPatch carries the address sub-keys present in an update. A nil
// field keeps the value the user had before the update.
type AddressPatch struct {
	Street  *string
	City    *string
	State   *string
	ZipCode *string
}

// UserPatch is the typed form of a sparse user update; nil means "not sent".
type UserPatch struct {
	UserName *string
	Password *string
	Email    *string
	Address  *AddressPatch
}

// ProductPatch is the typed form of a sparse product update; nil means "not sent".
type ProductPatch struct {
	ProductName        *string
	ProductPreco       *decimal.Decimal
	ProductDescription *string
	ProductType        *string
}

// DecodeUserPatch converts the fields of a JSON object into a UserPatch.
// Unknown keys are ignored.
func DecodeUserPatch(fields map[string]json.RawMessage) (UserPatch, error) {
	var p UserPatch
	var err error
	for key, raw := range fields {
		switch key {
		case "userName":
			p.UserName, err = decodeString(key, raw)
		case "password":
			p.Password, err = decodeString(key, raw)
		case "email":
			p.Email, err = decodeString(key, raw)
		case "address":
			p.Address, err = decodeAddressPatch(raw)
		}
		if err != nil {
			return UserPatch{}, err
		}
	}
	return p, nil
}

// DecodeProductPatch converts the fields of a JSON object into a ProductPatch.
// Unknown keys are ignored.
func DecodeProductPatch(fields map[string]json.RawMessage) (ProductPatch, error) {
	var p ProductPatch
	var err error
	for key, raw := range fields {
		switch key {
		case "productName":
			p.ProductName, err = decodeString(key, raw)
		case "productPreco":
			p.ProductPreco, err = decodeDecimal(key, raw)
		case "productDescription":
			p.ProductDescription, err = decodeString(key, raw)
		case "productType":
			p.ProductType, err = decodeString(key, raw)
		}
		if err != nil {
			return ProductPatch{}, err
		}
	}
	return p, nil
}

// ApplyUserPatch returns a copy of u with the patch applied. The identifier
// is never touched. Missing address sub-keys fall back to u's address as it
// was before the update, or to "" when u had no address.
func ApplyUserPatch(u *User, p UserPatch) *User {
	out := u.Clone()
	if p.UserName != nil {
		out.UserName = *p.UserName
	}
	if p.Password != nil {
		out.Password = *p.Password
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.Address != nil {
		out.Address = p.Address.mergeOnto(u.Address)
	}
	return out
}

// ApplyProductPatch returns a copy of pr with the patch applied.
func ApplyProductPatch(pr *Product, p ProductPatch) *Product {
	out := pr.Clone()
	if p.ProductName != nil {
		out.ProductName = *p.ProductName
	}
	if p.ProductPreco != nil {
		out.ProductPreco = *p.ProductPreco
	}
	if p.ProductDescription != nil {
		out.ProductDescription = *p.ProductDescription
	}
	if p.ProductType != nil {
		out.ProductType = *p.ProductType
	}
	return out
}

func (p *AddressPatch) mergeOnto(orig *Address) *Address {
	var base Address
	if orig != nil {
		base = *orig
	}
	return &Address{
		Street:  valueOr(p.Street, base.Street),
		City:    valueOr(p.City, base.City),
		State:   valueOr(p.State, base.State),
		ZipCode: valueOr(p.ZipCode, base.ZipCode),
	}
}

func valueOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}

func decodeAddressPatch(raw json.RawMessage) (*AddressPatch, error) {
	var sub map[string]json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &sub) != nil {
		return nil, &TypeMismatchError{Field: "address", Want: "an object"}
	}
	var p AddressPatch
	var err error
	for key, v := range sub {
		switch key {
		case "street":
			p.Street, err = decodeOptionalString("address."+key, v)
		case "city":
			p.City, err = decodeOptionalString("address."+key, v)
		case "state":
			p.State, err = decodeOptionalString("address."+key, v)
		case "zipCode":
			p.ZipCode, err = decodeOptionalString("address."+key, v)
		}
		if err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func decodeString(field string, raw json.RawMessage) (*string, error) {
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		return nil, &TypeMismatchError{Field: field, Want: "a string"}
	}
	return &s, nil
}

// null address sub-keys behave as absent
func decodeOptionalString(field string, raw json.RawMessage) (*string, error) {
	if isNull(raw) {
		return nil, nil
	}
	return decodeString(field, raw)
}

func decodeDecimal(field string, raw json.RawMessage) (*decimal.Decimal, error) {
	mismatch := &TypeMismatchError{Field: field, Want: "a decimal number"}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, mismatch
	}
	n, ok := v.(json.Number)
	if !ok {
		return nil, mismatch
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return nil, mismatch
	}
	return &d, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
