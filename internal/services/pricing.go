package services

import "github.com/brandforge/brandforge-backend/internal/logger"

// PricingMode selects how the base price of a quote is formed.
type PricingMode string

const (
	PricingModeBundle     PricingMode = "bundle"
	PricingModeIndividual PricingMode = "individual"
)

// Prices holds the catalog price constants. Defaults come from the catalog
// seed and can be overridden per deployment.
type Prices struct {
	WorkshopBase float64 `yaml:"workshop_base"`
	Asset        float64 `yaml:"asset"`
	Facilitator  float64 `yaml:"facilitator"`
}

// DefaultPrices is used when the catalog seed does not define prices.
var DefaultPrices = Prices{
	WorkshopBase: 1500,
	Asset:        350,
	Facilitator:  500,
}

// Quote is one priced purchase selection.
type Quote struct {
	Base           float64 `json:"base"`
	WorkshopCount  int     `json:"workshop_count"`
	HasFacilitator bool    `json:"has_facilitator"`
	Total          float64 `json:"total"`
}

type PricingService interface {
	// ComputeTotal turns a selection into a total price. It never fails:
	// workshopCount is clamped to at least 1, unknown modes fall back to the
	// base workshop price.
	ComputeTotal(mode PricingMode, bundlePrice *float64, selectedAssetCount, workshopCount int, hasFacilitator bool) Quote
	PriceTable() Prices
}

type pricingService struct {
	log    *logger.Logger
	prices Prices
}

func NewPricingService(baseLog *logger.Logger, prices Prices) PricingService {
	return &pricingService{
		log:    baseLog.With("service", "PricingService"),
		prices: prices,
	}
}

func (s *pricingService) PriceTable() Prices {
	return s.prices
}

func (s *pricingService) ComputeTotal(mode PricingMode, bundlePrice *float64, selectedAssetCount, workshopCount int, hasFacilitator bool) Quote {
	if workshopCount < 1 {
		workshopCount = 1
	}
	if selectedAssetCount < 0 {
		selectedAssetCount = 0
	}

	base := s.prices.WorkshopBase
	switch {
	case mode == PricingModeBundle && bundlePrice != nil:
		base = *bundlePrice
	case mode == PricingModeIndividual:
		base = s.prices.WorkshopBase + float64(selectedAssetCount)*s.prices.Asset
	}

	total := base * float64(workshopCount)
	if hasFacilitator {
		total += s.prices.Facilitator * float64(workshopCount)
	}

	return Quote{
		Base:           base,
		WorkshopCount:  workshopCount,
		HasFacilitator: hasFacilitator,
		Total:          total,
	}
}
