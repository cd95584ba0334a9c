package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brandforge/brandforge-backend/internal/logger"
)

// WorkspaceIDKey is where RequireWorkspace stores the parsed workspace id in
// the gin context.
const WorkspaceIDKey = "workspaceID"

// WorkspaceMiddleware scopes every request to one workspace. Authentication
// proper lives upstream; this layer only establishes the tenant boundary the
// core's not-found semantics depend on.
type WorkspaceMiddleware struct {
	log *logger.Logger
}

func NewWorkspaceMiddleware(log *logger.Logger) *WorkspaceMiddleware {
	return &WorkspaceMiddleware{log: log.With("middleware", "WorkspaceMiddleware")}
}

func (wm *WorkspaceMiddleware) RequireWorkspace() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("X-Workspace-ID"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing X-Workspace-ID header"})
			return
		}
		workspaceID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid X-Workspace-ID header"})
			return
		}
		c.Set(WorkspaceIDKey, workspaceID)
		c.Next()
	}
}

// WorkspaceID retrieves the workspace id stored by RequireWorkspace.
func WorkspaceID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(WorkspaceIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
