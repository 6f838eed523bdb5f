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

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type searchProductsQuery struct {
	Q    string `form:"q" binding:"max=200"`
	Size int    `form:"size" binding:"omitempty,min=1,max=50"`
}

func (h *ProductHandler) Count(c *gin.Context) {
	n, err := h.Svc.Count(c.Request.Context())
	if err != nil {
		writeFailure(c, h.Logger, "count products", err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, application.ErrProductNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if err != nil {
		writeFailure(c, h.Logger, "get product", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var p entity.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	saved, err := h.Svc.Create(c.Request.Context(), &p)
	if err != nil {
		writeFailure(c, h.Logger, "create product", err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Update applies a sparse JSON object of recognized product fields.
func (h *ProductHandler) Update(c *gin.Context) {
	fields, ok := readPatchFields(c)
	if !ok {
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), fields)
	if errors.Is(err, application.ErrProductNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if err != nil {
		writeFailure(c, h.Logger, "update product", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeFailure(c, h.Logger, "delete product", err)
		return
	}
	c.Status(http.StatusOK)
}

// Search queries the product index; it answers with an empty list when search is disabled.
func (h *ProductHandler) Search(c *gin.Context) {
	var q searchProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	products, err := h.Svc.Search(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		writeFailure(c, h.Logger, "search products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}
