package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-ecommerce/internal/interface/http"
)

type ProductModule struct {
	Handler *handlers.ProductHandler
	Limits  RateLimits
}

func NewProductModule(h *handlers.ProductHandler, limits RateLimits) *ProductModule {
	return &ProductModule{Handler: h, Limits: limits}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	read, write := m.Limits.Read(), m.Limits.Write()

	rg.GET("/number-of-products", read, m.Handler.Count)
	rg.GET("/product/:id", read, m.Handler.Get)
	rg.GET("/search-products", read, m.Handler.Search)
	rg.POST("/add-product", write, m.Handler.Create)
	rg.PATCH("/update-product/:id", write, m.Handler.Update)
	rg.DELETE("/delete-product/:id", write, m.Handler.Delete)
}
