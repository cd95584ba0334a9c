package app

import (
	"github.com/gin-gonic/gin"

	"github.com/brandforge/brandforge-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		WorkspaceMiddleware: middleware.Workspace,
		WorkshopHandler:     handlers.Workshop,
		ValidationHandler:   handlers.Validation,
		PricingHandler:      handlers.Pricing,
		BundleHandler:       handlers.Bundle,
		EventsHandler:       handlers.Events,
		AllowOrigins:        cfg.AllowOrigins,
	})
}
