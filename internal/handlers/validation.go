package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brandforge/brandforge-backend/internal/middleware"
	"github.com/brandforge/brandforge-backend/internal/services"
)

type ValidationHandler struct {
	validation services.ValidationService
	preview    services.PreviewService
	assets     services.AssetService
}

func NewValidationHandler(validationSvc services.ValidationService, preview services.PreviewService, assets services.AssetService) *ValidationHandler {
	return &ValidationHandler{validation: validationSvc, preview: preview, assets: assets}
}

// GET /api/assets
func (h *ValidationHandler) ListAssets(c *gin.Context) {
	rows, err := h.assets.List(c.Request.Context(), middleware.WorkspaceID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"assets": rows})
}

// GET /api/assets/:id/validation
func (h *ValidationHandler) GetAssetValidation(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := h.validation.GetAssetValidation(c.Request.Context(), middleware.WorkspaceID(c), assetID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, result)
}

type createAssetRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
}

// POST /api/assets
func (h *ValidationHandler) CreateAsset(c *gin.Context) {
	var req createAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	asset, err := h.assets.Create(c.Request.Context(), middleware.WorkspaceID(c), req.Name, req.Category)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

type previewImpactRequest struct {
	CandidateIDs []uuid.UUID `json:"candidate_ids"`
}

// POST /api/validation/preview
func (h *ValidationHandler) PreviewImpact(c *gin.Context) {
	var req previewImpactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := h.preview.PreviewImpact(c.Request.Context(), middleware.WorkspaceID(c), req.CandidateIDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, result)
}
