package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-ecommerce/internal/interface/middleware"
)

// RateLimits holds the per-IP budgets shared by the entity modules. A nil
// Redis turns every limiter into a pass-through.
type RateLimits struct {
	Redis  *redis.Client
	Reads  int
	Writes int
	Window time.Duration
	Allow  middleware.AllowFunc
}

func (l RateLimits) Read() gin.HandlerFunc {
	return middleware.RateLimit(l.Redis, l.Reads, l.Window, middleware.KeyByIPAndScope("read"), l.Allow)
}

func (l RateLimits) Write() gin.HandlerFunc {
	return middleware.RateLimit(l.Redis, l.Writes, l.Window, middleware.KeyByIPAndScope("write"), l.Allow)
}
