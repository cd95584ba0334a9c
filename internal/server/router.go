package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/brandforge/brandforge-backend/internal/handlers"
	"github.com/brandforge/brandforge-backend/internal/middleware"
)

type RouterConfig struct {
	WorkspaceMiddleware *middleware.WorkspaceMiddleware
	WorkshopHandler     *handlers.WorkshopHandler
	ValidationHandler   *handlers.ValidationHandler
	PricingHandler      *handlers.PricingHandler
	BundleHandler       *handlers.BundleHandler
	EventsHandler       *handlers.EventsHandler
	AllowOrigins        []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Workspace-ID"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.WorkspaceMiddleware.RequireWorkspace())
	{
		// Pricing
		api.POST("/pricing/quote", cfg.PricingHandler.Quote)
		// Bundles
		api.GET("/bundles", cfg.BundleHandler.List)
		// Workshops
		api.GET("/workshops", cfg.WorkshopHandler.List)
		api.POST("/workshops/purchase", cfg.WorkshopHandler.Purchase)
		api.GET("/workshops/:id", cfg.WorkshopHandler.Get)
		api.POST("/workshops/:id/schedule", cfg.WorkshopHandler.Schedule)
		api.POST("/workshops/:id/start", cfg.WorkshopHandler.Start)
		api.POST("/workshops/:id/steps/:stepNumber", cfg.WorkshopHandler.SaveStep)
		api.POST("/workshops/:id/timer", cfg.WorkshopHandler.SyncTimer)
		api.POST("/workshops/:id/bookmark", cfg.WorkshopHandler.SetBookmark)
		api.POST("/workshops/:id/complete", cfg.WorkshopHandler.Complete)
		api.POST("/workshops/:id/cancel", cfg.WorkshopHandler.Cancel)
		api.POST("/workshops/:id/notes", cfg.WorkshopHandler.AddNote)
		api.POST("/workshops/:id/report", cfg.WorkshopHandler.GenerateReport)
		api.PUT("/workshops/:id/canvas", cfg.WorkshopHandler.UpdateCanvas)
		api.POST("/workshops/:id/canvas/lock", cfg.WorkshopHandler.ToggleCanvasLock)
		// Validation
		api.GET("/assets", cfg.ValidationHandler.ListAssets)
		api.POST("/assets", cfg.ValidationHandler.CreateAsset)
		api.GET("/assets/:id/validation", cfg.ValidationHandler.GetAssetValidation)
		api.POST("/validation/preview", cfg.ValidationHandler.PreviewImpact)
		// Events
		api.GET("/events/stream", cfg.EventsHandler.Stream)
	}

	return router
}
