package app

import (
	"gorm.io/gorm"

	redisclient "github.com/brandforge/brandforge-backend/internal/clients/redis"
	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/services"
	"github.com/brandforge/brandforge-backend/internal/sse"
)

type Services struct {
	Pricing    services.PricingService
	Validation services.ValidationService
	Workshop   services.WorkshopService
	Step       services.StepService
	Canvas     services.CanvasService
	Preview    services.PreviewService
	Asset      services.AssetService
	Bundle     services.BundleService
	Notifier   services.DashboardNotifier
}

func wireServices(db *gorm.DB, log *logger.Logger, catalog Catalog, reposet Repos, hub *sse.Hub, bus redisclient.Bus) Services {
	log.Info("Wiring services...")

	notifier := services.NewDashboardNotifier(log, hub, bus)
	pricing := services.NewPricingService(log, catalog.Prices)
	validation := services.NewValidationService(db, log, reposet.BrandAsset, reposet.ResearchMethod, bus, notifier)
	step := services.NewStepService(db, log, reposet.Workshop, reposet.WorkshopStep, validation)
	canvas := services.NewCanvasService(db, log, reposet.Workshop)
	preview := services.NewPreviewService(db, log, reposet.BrandAsset, reposet.ResearchMethod)
	asset := services.NewAssetService(db, log, reposet.BrandAsset, reposet.ResearchMethod, validation)
	bundle := services.NewBundleService(db, log, reposet.WorkshopBundle, catalog.Bundles)
	workshop := services.NewWorkshopService(
		db,
		log,
		reposet.Workshop,
		reposet.WorkshopStep,
		reposet.BrandAsset,
		reposet.WorkshopBundle,
		pricing,
		validation,
		notifier,
		catalog.Steps,
	)

	return Services{
		Pricing:    pricing,
		Validation: validation,
		Workshop:   workshop,
		Step:       step,
		Canvas:     canvas,
		Preview:    preview,
		Asset:      asset,
		Bundle:     bundle,
		Notifier:   notifier,
	}
}
