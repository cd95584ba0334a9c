package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/brandforge/brandforge-backend/internal/middleware"
	"github.com/brandforge/brandforge-backend/internal/sse"
)

type EventsHandler struct {
	hub *sse.Hub
}

func NewEventsHandler(hub *sse.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// GET /api/events/stream
//
// Streams workshop and validation events for the caller's workspace until
// the client disconnects.
func (h *EventsHandler) Stream(c *gin.Context) {
	client := h.hub.NewClient()
	h.hub.AddChannel(client, sse.WorkspaceChannel(middleware.WorkspaceID(c)))
	defer h.hub.CloseClient(client)

	h.hub.ServeHTTP(c.Writer, c.Request, client)
}
