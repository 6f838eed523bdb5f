package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type searchQuery struct {
	Q    string `form:"q" binding:"max=10"`
	Size int    `form:"size" binding:"omitempty,min=1,max=50"`
	Kind string `json:"kind" binding:"omitempty,oneof=a b"`
}

func TestToDetails_ValidationErrors(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&searchQuery{Q: "a very long query", Size: 99, Kind: "c"})

	assert.Equal(t, map[string]string{
		"q":    "must be at most 10 characters long",
		"size": "must be at most 50",
		"kind": "must be one of: a, b",
	}, ToDetails(err))
}

func TestToDetails_Payloads(t *testing.T) {
	var target struct {
		Name string `json:"userName"`
	}
	syntaxErr := json.Unmarshal([]byte(`{"userName":`), &target)
	typeErr := json.Unmarshal([]byte(`{"userName":1}`), &target)

	cases := []struct {
		name string
		err  error
		want map[string]string
	}{
		{"nil", nil, nil},
		{"empty body", io.EOF, map[string]string{"payload": "empty body"}},
		{"syntax", syntaxErr, map[string]string{"payload": "invalid json"}},
		{"type", typeErr, map[string]string{"userName": "must be string"}},
		{"wrapped type", fmt.Errorf("bind: %w", typeErr), map[string]string{"userName": "must be string"}},
		{"other", errors.New("boom"), map[string]string{"payload": "invalid payload"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToDetails(tc.err))
		})
	}
}
