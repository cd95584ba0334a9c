package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brandforge/brandforge-backend/internal/services"
)

type PricingHandler struct {
	pricing services.PricingService
}

func NewPricingHandler(pricing services.PricingService) *PricingHandler {
	return &PricingHandler{pricing: pricing}
}

type quoteRequest struct {
	Mode               services.PricingMode `json:"mode"`
	BundlePrice        *float64             `json:"bundle_price,omitempty"`
	SelectedAssetCount int                  `json:"selected_asset_count"`
	WorkshopCount      int                  `json:"workshop_count"`
	HasFacilitator     bool                 `json:"has_facilitator"`
}

// POST /api/pricing/quote
//
// The purchase page calls this on every selection change, so the response is
// always a fresh synchronous computation.
func (h *PricingHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	quote := h.pricing.ComputeTotal(req.Mode, req.BundlePrice, req.SelectedAssetCount, req.WorkshopCount, req.HasFacilitator)
	RespondOK(c, quote)
}
