package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-ecommerce/internal/interface/http"
)

// UserModule mounts the user endpoints:
// GET /number-of-users, GET /user/:id, POST /add-user,
// PATCH /update-user/:id, DELETE /delete-user/:id
type UserModule struct {
	Handler *handlers.UserHandler
	Limits  RateLimits
}

func NewUserModule(h *handlers.UserHandler, limits RateLimits) *UserModule {
	return &UserModule{Handler: h, Limits: limits}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	read, write := m.Limits.Read(), m.Limits.Write()

	rg.GET("/number-of-users", read, m.Handler.Count)
	rg.GET("/user/:id", read, m.Handler.Get)
	rg.POST("/add-user", write, m.Handler.Create)
	rg.PATCH("/update-user/:id", write, m.Handler.Update)
	rg.DELETE("/delete-user/:id", write, m.Handler.Delete)
}
