package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/playtrove/gamestore/internal/domain/entity"
	handlers "github.com/playtrove/gamestore/internal/interface/http"
	"github.com/playtrove/gamestore/internal/interface/middleware"
	"github.com/playtrove/gamestore/pkg/token"
)

// CatalogModule wires game and association routes.
// Authenticated (any role): game and tag reads.
// Admin only: game creation and every association write.
type CatalogModule struct {
	Handler *handlers.CatalogHandler
	Tokens  *token.Manager
	Redis   *redis.Client
}

func NewCatalogModule(h *handlers.CatalogHandler, tm *token.Manager, rdb *redis.Client) *CatalogModule {
	return &CatalogModule{Handler: h, Tokens: tm, Redis: rdb}
}

func (m *CatalogModule) Mount(api *gin.RouterGroup) {
	authed := api.Group("/")
	authed.Use(middleware.RequireAuth(m.Tokens))
	authed.Use(middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyBySubject(), middleware.AllowPrivateIP()))
	{
		authed.GET("/games", m.Handler.ListGames)
		authed.GET("/games/:id", m.Handler.GetGame)
		authed.GET("/games/:id/genres", m.Handler.GetGenres)
		authed.GET("/games/:id/platforms", m.Handler.GetPlatforms)
		authed.GET("/genres/:id/games", m.Handler.GamesWithGenre)
	}

	admin := api.Group("/")
	admin.Use(middleware.RequireRole(m.Tokens, entity.RoleAdmin))
	admin.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyBySubject(), middleware.AllowPrivateIP()))
	{
		admin.POST("/games", m.Handler.CreateGame)
		admin.PUT("/games/:id/genres", m.Handler.SetGenres)
		admin.PUT("/games/:id/platforms", m.Handler.SetPlatforms)
		admin.POST("/games/:id/genres/:tagID", m.Handler.AddGenre)
		admin.POST("/games/:id/platforms/:tagID", m.Handler.AddPlatform)
		admin.DELETE("/games/:id/genres/:tagID", m.Handler.RemoveGenre)
		admin.DELETE("/games/:id/platforms/:tagID", m.Handler.RemovePlatform)
	}
}
