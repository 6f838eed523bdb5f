package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-ecommerce/internal/domain/entity"
	"github.com/oksasatya/go-ddd-ecommerce/internal/domain/repository"
	"github.com/oksasatya/go-ddd-ecommerce/pkg/helpers"
	"github.com/oksasatya/go-ddd-ecommerce/pkg/response"
	"github.com/oksasatya/go-ddd-ecommerce/pkg/validation"
)

// readPatchFields reads the request body as a JSON object of field -> raw value.
func readPatchFields(c *gin.Context) (map[string]json.RawMessage, bool) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"payload": "unreadable body"})
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return nil, false
	}
	if fields == nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"payload": "must be a JSON object"})
		return nil, false
	}
	return fields, true
}

// writeFailure maps errors that are not a plain not-found onto the envelope.
func writeFailure(c *gin.Context, logger *logrus.Logger, op string, err error) {
	var tm *entity.TypeMismatchError
	switch {
	case errors.As(err, &tm):
		response.Error(c, http.StatusInternalServerError, "type mismatch", map[string]string{tm.Field: "must be " + tm.Want})
	case errors.Is(err, repository.ErrInvalidID):
		response.Error(c, http.StatusBadRequest, "invalid id", err.Error())
	default:
		helpers.LogError(logger, op+" failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
