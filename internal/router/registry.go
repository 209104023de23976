package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Registry collects feature modules and mounts them under the /api prefix.
type Registry struct {
	engine *gin.Engine
	api    *gin.RouterGroup
	logger *logrus.Logger
	mods   []Module
}

func NewRegistry(engine *gin.Engine, logger *logrus.Logger) *Registry {
	return &Registry{engine: engine, api: engine.Group("/api"), logger: logger}
}

func (r *Registry) Add(mods ...Module) {
	r.mods = append(r.mods, mods...)
}

// MountAll mounts every registered module. Called once at startup.
func (r *Registry) MountAll() {
	for _, m := range r.mods {
		m.Mount(r.api)
	}
	if r.logger != nil {
		r.logger.WithField("routes", len(r.engine.Routes())).Info("api routes mounted")
	}
}
