package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/brandforge/brandforge-backend/internal/middleware"
	"github.com/brandforge/brandforge-backend/internal/services"
)

type BundleHandler struct {
	bundles services.BundleService
}

func NewBundleHandler(bundles services.BundleService) *BundleHandler {
	return &BundleHandler{bundles: bundles}
}

// GET /api/bundles
func (h *BundleHandler) List(c *gin.Context) {
	rows, err := h.bundles.List(c.Request.Context(), middleware.WorkspaceID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"bundles": rows})
}
