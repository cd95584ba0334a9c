package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	redisclient "github.com/brandforge/brandforge-backend/internal/clients/redis"
	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/sse"
)

// DashboardNotifier pushes workshop and validation events to dashboard
// clients. Delivery is best-effort: a dead bus never fails the mutation that
// triggered the event.
type DashboardNotifier interface {
	ValidationUpdated(workspaceID, assetID uuid.UUID, percent float64, status string)
	WorkshopCompleted(workspaceID, workshopID uuid.UUID)
	ReportReady(workspaceID, workshopID uuid.UUID)
}

type dashboardNotifier struct {
	log *logger.Logger
	hub *sse.Hub
	bus redisclient.Bus
}

func NewDashboardNotifier(log *logger.Logger, hub *sse.Hub, bus redisclient.Bus) DashboardNotifier {
	return &dashboardNotifier{
		log: log.With("service", "DashboardNotifier"),
		hub: hub,
		bus: bus,
	}
}

func (n *dashboardNotifier) publish(msg sse.Message) {
	if n.bus != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := n.bus.Publish(ctx, msg); err != nil {
			n.log.Warn("redis publish failed, falling back to local hub", "error", err)
		} else {
			return
		}
	}
	if n.hub != nil {
		n.hub.Broadcast(msg)
	}
}

func (n *dashboardNotifier) ValidationUpdated(workspaceID, assetID uuid.UUID, percent float64, status string) {
	n.publish(sse.Message{
		Channel: sse.WorkspaceChannel(workspaceID),
		Event:   sse.EventValidationUpdated,
		Data: map[string]any{
			"asset_id":           assetID,
			"validation_percent": percent,
			"validation_status":  status,
		},
	})
}

func (n *dashboardNotifier) WorkshopCompleted(workspaceID, workshopID uuid.UUID) {
	n.publish(sse.Message{
		Channel: sse.WorkspaceChannel(workspaceID),
		Event:   sse.EventWorkshopCompleted,
		Data:    map[string]any{"workshop_id": workshopID},
	})
}

func (n *dashboardNotifier) ReportReady(workspaceID, workshopID uuid.UUID) {
	n.publish(sse.Message{
		Channel: sse.WorkspaceChannel(workspaceID),
		Event:   sse.EventReportReady,
		Data:    map[string]any{"workshop_id": workshopID},
	})
}
