package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-ecommerce/internal/application"
	"github.com/oksasatya/go-ddd-ecommerce/internal/domain/entity"
	"github.com/oksasatya/go-ddd-ecommerce/pkg/response"
	"github.com/oksasatya/go-ddd-ecommerce/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

func (h *UserHandler) Count(c *gin.Context) {
	n, err := h.Svc.Count(c.Request.Context())
	if err != nil {
		writeFailure(c, h.Logger, "count users", err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, application.ErrUserNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if err != nil {
		writeFailure(c, h.Logger, "get user", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Create(c *gin.Context) {
	u := entity.NewUser()
	if err := c.ShouldBindJSON(u); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	saved, err := h.Svc.Create(c.Request.Context(), u)
	if err != nil {
		writeFailure(c, h.Logger, "create user", err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Update applies a sparse JSON object of recognized user fields.
func (h *UserHandler) Update(c *gin.Context) {
	fields, ok := readPatchFields(c)
	if !ok {
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), fields)
	if errors.Is(err, application.ErrUserNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if err != nil {
		writeFailure(c, h.Logger, "update user", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeFailure(c, h.Logger, "delete user", err)
		return
	}
	c.Status(http.StatusOK)
}
