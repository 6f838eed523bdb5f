package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m
}

func sampleUser() *User {
	return &User{
		ID:       "u1",
		UserName: "ana",
		Password: "secret",
		Email:    "ana@example.com",
		Address:  &Address{Street: "A", City: "B", State: "C", ZipCode: "D"},
	}
}

func TestApplyUserPatch_UserNameOnly(t *testing.T) {
	u := sampleUser()
	p, err := DecodeUserPatch(fields(t, `{"userName":"bia"}`))
	require.NoError(t, err)

	got := ApplyUserPatch(u, p)

	want := sampleUser()
	want.UserName = "bia"
	assert.Equal(t, want, got)
	assert.Equal(t, "ana", u.UserName, "original must not be modified")
}

func TestApplyUserPatch_AllScalarFields(t *testing.T) {
	p, err := DecodeUserPatch(fields(t, `{"userName":"bia","password":"p2","email":"bia@example.com"}`))
	require.NoError(t, err)

	got := ApplyUserPatch(sampleUser(), p)

	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "bia", got.UserName)
	assert.Equal(t, "p2", got.Password)
	assert.Equal(t, "bia@example.com", got.Email)
	assert.Equal(t, &Address{Street: "A", City: "B", State: "C", ZipCode: "D"}, got.Address)
}

func TestApplyUserPatch_AddressFallsBackToOriginal(t *testing.T) {
	p, err := DecodeUserPatch(fields(t, `{"address":{"street":"X"}}`))
	require.NoError(t, err)

	got := ApplyUserPatch(sampleUser(), p)

	assert.Equal(t, &Address{Street: "X", City: "B", State: "C", ZipCode: "D"}, got.Address)
}

func TestApplyUserPatch_AddressWithoutPriorAddress(t *testing.T) {
	u := sampleUser()
	u.Address = nil
	p, err := DecodeUserPatch(fields(t, `{"address":{"city":"B"}}`))
	require.NoError(t, err)

	got := ApplyUserPatch(u, p)

	assert.Equal(t, &Address{Street: "", City: "B", State: "", ZipCode: ""}, got.Address)
}

func TestApplyUserPatch_NullAddressSubKeyIsAbsent(t *testing.T) {
	p, err := DecodeUserPatch(fields(t, `{"address":{"street":null,"zipCode":"Z"}}`))
	require.NoError(t, err)

	got := ApplyUserPatch(sampleUser(), p)

	assert.Equal(t, &Address{Street: "A", City: "B", State: "C", ZipCode: "Z"}, got.Address)
}

func TestApplyUserPatch_AddressIsNotShared(t *testing.T) {
	u := sampleUser()
	got := ApplyUserPatch(u, UserPatch{})
	got.Address.Street = "changed"

	assert.Equal(t, "A", u.Address.Street)
}

func TestApplyUserPatch_UnknownKeysIgnored(t *testing.T) {
	p, err := DecodeUserPatch(fields(t, `{"foo":"bar","userId":"other","email":"x@y.z"}`))
	require.NoError(t, err)

	got := ApplyUserPatch(sampleUser(), p)

	want := sampleUser()
	want.Email = "x@y.z"
	assert.Equal(t, want, got)
}

func TestDecodeUserPatch_TypeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"number for string", `{"userName":42}`, "userName"},
		{"null for string", `{"password":null}`, "password"},
		{"bool for email", `{"email":true}`, "email"},
		{"string for address", `{"address":"Main St"}`, "address"},
		{"array for address", `{"address":["a"]}`, "address"},
		{"null address", `{"address":null}`, "address"},
		{"number in address", `{"address":{"zipCode":12345}}`, "address.zipCode"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeUserPatch(fields(t, tc.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTypeMismatch)

			var tm *TypeMismatchError
			require.ErrorAs(t, err, &tm)
			assert.Equal(t, tc.field, tm.Field)
		})
	}
}

func sampleProduct() *Product {
	return &Product{
		ID:                 "p1",
		ProductName:        "Mouse",
		ProductPreco:       decimal.RequireFromString("49.90"),
		ProductDescription: "Wireless",
		ProductType:        "peripheral",
	}
}

func TestApplyProductPatch(t *testing.T) {
	p, err := DecodeProductPatch(fields(t, `{"productPreco":59.9,"productType":"gadget","productId":"zzz","foo":1}`))
	require.NoError(t, err)

	got := ApplyProductPatch(sampleProduct(), p)

	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "Mouse", got.ProductName)
	assert.True(t, decimal.RequireFromString("59.9").Equal(got.ProductPreco))
	assert.Equal(t, "Wireless", got.ProductDescription)
	assert.Equal(t, "gadget", got.ProductType)
}

func TestDecodeProductPatch_PriceKeepsPrecision(t *testing.T) {
	p, err := DecodeProductPatch(fields(t, `{"productPreco":0.1000000000000000055511151231257827}`))
	require.NoError(t, err)
	require.NotNil(t, p.ProductPreco)

	assert.Equal(t, "0.1000000000000000055511151231257827", p.ProductPreco.String())
}

func TestDecodeProductPatch_TypeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"string price", `{"productPreco":"10.00"}`, "productPreco"},
		{"null price", `{"productPreco":null}`, "productPreco"},
		{"number name", `{"productName":1}`, "productName"},
		{"object type", `{"productType":{}}`, "productType"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeProductPatch(fields(t, tc.body))

			var tm *TypeMismatchError
			require.ErrorAs(t, err, &tm)
			assert.Equal(t, tc.field, tm.Field)
			assert.ErrorIs(t, err, ErrTypeMismatch)
		})
	}
}

func TestNewUser_AddressDefaults(t *testing.T) {
	omitted := NewUser()
	require.NoError(t, json.Unmarshal([]byte(`{"userName":"ana"}`), omitted))
	assert.Equal(t, &Address{}, omitted.Address)

	explicitNull := NewUser()
	require.NoError(t, json.Unmarshal([]byte(`{"userName":"ana","address":null}`), explicitNull))
	assert.Nil(t, explicitNull.Address)
}

func TestProduct_PriceSerializesAsNumber(t *testing.T) {
	b, err := json.Marshal(sampleProduct())
	require.NoError(t, err)

	assert.Contains(t, string(b), `"productPreco":49.9`)
}
