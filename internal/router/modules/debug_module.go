package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-ecommerce/internal/interface/middleware"
)

type DebugModule struct {
	Limits RateLimits
}

func NewDebugModule(limits RateLimits) *DebugModule { return &DebugModule{Limits: limits} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar, including the entity_ops write counters; per-IP limited
	rl := middleware.RateLimit(m.Limits.Redis, m.Limits.Reads, m.Limits.Window, middleware.KeyByIPAndPath(), m.Limits.Allow)
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
