package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/playtrove/gamestore/internal/interface/http"
	"github.com/playtrove/gamestore/internal/interface/middleware"
)

// AuthModule wires the login endpoint.
// Public: POST /api/auth/login (per-IP rate limited)
type AuthModule struct {
	Handler *handlers.AuthHandler
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Redis: rdb}
}

func (m *AuthModule) Mount(api *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil) // 10 req/min per IP

	api.POST("/auth/login", loginLimiter, m.Handler.Login)
}
