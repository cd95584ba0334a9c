package app

import (
	"github.com/brandforge/brandforge-backend/internal/handlers"
	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/session"
	"github.com/brandforge/brandforge-backend/internal/sse"
)

type Handlers struct {
	Workshop   *handlers.WorkshopHandler
	Validation *handlers.ValidationHandler
	Pricing    *handlers.PricingHandler
	Bundle     *handlers.BundleHandler
	Events     *handlers.EventsHandler
}

func wireHandlers(log *logger.Logger, services Services, hub *sse.Hub, sessions *session.Manager) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Workshop:   handlers.NewWorkshopHandler(services.Workshop, services.Step, services.Canvas, sessions),
		Validation: handlers.NewValidationHandler(services.Validation, services.Preview, services.Asset),
		Pricing:    handlers.NewPricingHandler(services.Pricing),
		Bundle:     handlers.NewBundleHandler(services.Bundle),
		Events:     handlers.NewEventsHandler(hub),
	}
}
