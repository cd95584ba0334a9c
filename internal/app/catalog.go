package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domain "github.com/brandforge/brandforge-backend/internal/domain/workshop"
	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/services"
	"github.com/brandforge/brandforge-backend/internal/utils"
)

// Catalog is the YAML seed for pricing constants, the step template and the
// bundle offers. Every section is optional; omitted sections fall back to
// the compiled-in defaults.
type Catalog struct {
	Prices  services.Prices       `yaml:"prices"`
	Steps   []domain.StepSpec     `yaml:"steps"`
	Bundles []services.BundleSpec `yaml:"bundles"`
}

func LoadCatalog(path string, log *logger.Logger) Catalog {
	cat := Catalog{
		Prices: services.DefaultPrices,
		Steps:  domain.DefaultStepTemplate,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Catalog file unavailable, using defaults", "path", path, "error", err)
		cat.Prices = overridePrices(cat.Prices, log)
		return cat
	}

	var parsed Catalog
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		log.Warn("Catalog file unreadable, using defaults", "path", path, "error", err)
		cat.Prices = overridePrices(cat.Prices, log)
		return cat
	}

	if parsed.Prices.WorkshopBase > 0 {
		cat.Prices.WorkshopBase = parsed.Prices.WorkshopBase
	}
	if parsed.Prices.Asset > 0 {
		cat.Prices.Asset = parsed.Prices.Asset
	}
	if parsed.Prices.Facilitator > 0 {
		cat.Prices.Facilitator = parsed.Prices.Facilitator
	}
	if len(parsed.Steps) > 0 {
		if err := validateSteps(parsed.Steps); err != nil {
			log.Warn("Catalog step template rejected, using default", "error", err)
		} else {
			cat.Steps = parsed.Steps
		}
	}
	cat.Bundles = parsed.Bundles
	cat.Prices = overridePrices(cat.Prices, log)

	log.Info("Catalog loaded", "path", path, "steps", len(cat.Steps), "bundles", len(cat.Bundles))
	return cat
}

// overridePrices applies per-deployment environment overrides on top of
// whatever the catalog file resolved to. PRICE_* vars win over the file so
// a price change does not need a redeployed catalog.
func overridePrices(p services.Prices, log *logger.Logger) services.Prices {
	p.WorkshopBase = utils.GetEnvAsFloat("PRICE_WORKSHOP_BASE", p.WorkshopBase, log)
	p.Asset = utils.GetEnvAsFloat("PRICE_ASSET", p.Asset, log)
	p.Facilitator = utils.GetEnvAsFloat("PRICE_FACILITATOR", p.Facilitator, log)
	return p
}

// validateSteps requires the template to cover steps 1..TotalSteps exactly
// once, in order.
func validateSteps(steps []domain.StepSpec) error {
	if len(steps) != domain.TotalSteps {
		return fmt.Errorf("expected %d steps, got %d", domain.TotalSteps, len(steps))
	}
	for i, s := range steps {
		if s.Number != i+1 {
			return fmt.Errorf("step %d has number %d", i+1, s.Number)
		}
		if s.Title == "" {
			return fmt.Errorf("step %d has no title", s.Number)
		}
	}
	return nil
}
