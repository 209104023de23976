package router

import (
	"github.com/playtrove/gamestore/internal/application"
	"github.com/playtrove/gamestore/internal/container"
	pginfra "github.com/playtrove/gamestore/internal/infrastructure/postgres"
	handlers "github.com/playtrove/gamestore/internal/interface/http"
	"github.com/playtrove/gamestore/internal/router/modules"
	"github.com/playtrove/gamestore/pkg/helpers"
)

// InitModules builds repositories, services, and handlers from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	principals := pginfra.NewPrincipalRepository(pool)
	games := pginfra.NewGameRepository(pool)
	genres := pginfra.NewGameGenres(pool)
	platforms := pginfra.NewGamePlatforms(pool)

	cache := helpers.NewTagCache(container.GetRedis(), cfg.TagCacheTTL)
	var pub application.EventPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	authSvc := application.NewAuthService(principals, container.GetTokens(), logger)
	catalogSvc := application.NewCatalogService(games, genres, platforms, cache, pub, logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetRedis()))
	r.Add(modules.NewCatalogModule(catalogHandler, container.GetTokens(), container.GetRedis()))
}
