package app

import (
	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/middleware"
)

type Middleware struct {
	Workspace *middleware.WorkspaceMiddleware
}

func wireMiddleware(log *logger.Logger) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Workspace: middleware.NewWorkspaceMiddleware(log),
	}
}
