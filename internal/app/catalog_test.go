package app

import (
	"os"
	"path/filepath"
	"testing"

	domain "github.com/brandforge/brandforge-backend/internal/domain/workshop"
	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/services"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoadCatalogMissingFileUsesDefaults(t *testing.T) {
	cat := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"), logger.NewNop())

	if cat.Prices != services.DefaultPrices {
		t.Fatalf("prices: want defaults, got %+v", cat.Prices)
	}
	if len(cat.Steps) != domain.TotalSteps {
		t.Fatalf("steps: want=%d got=%d", domain.TotalSteps, len(cat.Steps))
	}
	if len(cat.Bundles) != 0 {
		t.Fatalf("bundles: want=0 got=%d", len(cat.Bundles))
	}
}

func TestLoadCatalogOverridesPricesAndBundles(t *testing.T) {
	path := writeCatalog(t, `
prices:
  workshop_base: 2000
  facilitator: 750
bundles:
  - name: Brand Foundation
    asset_names: [Purpose, Positioning]
    base_price: 2550
    discount: 300
`)
	cat := LoadCatalog(path, logger.NewNop())

	if cat.Prices.WorkshopBase != 2000 {
		t.Fatalf("workshop base: want=2000 got=%v", cat.Prices.WorkshopBase)
	}
	// Omitted price entries keep their defaults.
	if cat.Prices.Asset != services.DefaultPrices.Asset {
		t.Fatalf("asset price: want=%v got=%v", services.DefaultPrices.Asset, cat.Prices.Asset)
	}
	if cat.Prices.Facilitator != 750 {
		t.Fatalf("facilitator price: want=750 got=%v", cat.Prices.Facilitator)
	}
	if len(cat.Bundles) != 1 || cat.Bundles[0].Name != "Brand Foundation" {
		t.Fatalf("bundles: got=%+v", cat.Bundles)
	}
	if len(cat.Bundles[0].AssetNames) != 2 {
		t.Fatalf("bundle asset names: got=%v", cat.Bundles[0].AssetNames)
	}
}

func TestLoadCatalogEnvPriceOverrides(t *testing.T) {
	path := writeCatalog(t, `
prices:
  workshop_base: 2000
`)
	t.Setenv("PRICE_WORKSHOP_BASE", "1750")
	t.Setenv("PRICE_ASSET", "400")
	cat := LoadCatalog(path, logger.NewNop())

	// env wins over the file value
	if cat.Prices.WorkshopBase != 1750 {
		t.Fatalf("workshop base: want=1750 got=%v", cat.Prices.WorkshopBase)
	}
	if cat.Prices.Asset != 400 {
		t.Fatalf("asset price: want=400 got=%v", cat.Prices.Asset)
	}
	if cat.Prices.Facilitator != services.DefaultPrices.Facilitator {
		t.Fatalf("facilitator price: want default got=%v", cat.Prices.Facilitator)
	}
}

func TestLoadCatalogEnvOverridesApplyWithoutFile(t *testing.T) {
	t.Setenv("PRICE_FACILITATOR", "600")
	cat := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"), logger.NewNop())

	if cat.Prices.Facilitator != 600 {
		t.Fatalf("facilitator price: want=600 got=%v", cat.Prices.Facilitator)
	}
	if cat.Prices.WorkshopBase != services.DefaultPrices.WorkshopBase {
		t.Fatalf("workshop base: want default got=%v", cat.Prices.WorkshopBase)
	}
}

func TestLoadCatalogRejectsBrokenStepTemplate(t *testing.T) {
	path := writeCatalog(t, `
steps:
  - number: 1
    title: Only Step
`)
	cat := LoadCatalog(path, logger.NewNop())

	if len(cat.Steps) != domain.TotalSteps {
		t.Fatalf("broken template accepted: %d steps", len(cat.Steps))
	}
	if cat.Steps[0].Title != domain.DefaultStepTemplate[0].Title {
		t.Fatalf("default template not restored: %q", cat.Steps[0].Title)
	}
}

func TestLoadCatalogAcceptsFullStepTemplate(t *testing.T) {
	path := writeCatalog(t, `
steps:
  - {number: 1, title: Welcome, duration: 5 min}
  - {number: 2, title: Purpose, duration: 30 min}
  - {number: 3, title: Approach, duration: 30 min}
  - {number: 4, title: Customers, duration: 30 min}
  - {number: 5, title: Canvas, duration: 20 min}
  - {number: 6, title: Wrap Up, duration: 10 min}
`)
	cat := LoadCatalog(path, logger.NewNop())

	if cat.Steps[0].Title != "Welcome" {
		t.Fatalf("custom template not applied: %q", cat.Steps[0].Title)
	}
	if cat.Steps[5].Number != 6 {
		t.Fatalf("last step number: got=%d", cat.Steps[5].Number)
	}
}
