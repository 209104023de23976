package router

import "github.com/gin-gonic/gin"

// Module is one slice of the storefront API (auth, catalog). A module mounts
// its own routes, together with their guards and limiters, under the shared
// base group.
type Module interface {
	Mount(api *gin.RouterGroup)
}
