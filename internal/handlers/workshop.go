package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/brandforge/brandforge-backend/internal/middleware"
	"github.com/brandforge/brandforge-backend/internal/services"
	"github.com/brandforge/brandforge-backend/internal/session"
)

type WorkshopHandler struct {
	workshops services.WorkshopService
	steps     services.StepService
	canvas    services.CanvasService
	sessions  *session.Manager
}

func NewWorkshopHandler(workshops services.WorkshopService, steps services.StepService, canvas services.CanvasService, sessions *session.Manager) *WorkshopHandler {
	return &WorkshopHandler{workshops: workshops, steps: steps, canvas: canvas, sessions: sessions}
}

func workshopID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return uuid.Nil, false
	}
	return id, true
}

// GET /api/workshops
func (h *WorkshopHandler) List(c *gin.Context) {
	rows, err := h.workshops.List(c.Request.Context(), middleware.WorkspaceID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"workshops": rows})
}

// GET /api/workshops/:id
func (h *WorkshopHandler) Get(c *gin.Context) {
	id, ok := workshopID(c)
	if !ok {
		return
	}
	ws, err := h.workshops.Get(c.Request.Context(), middleware.WorkspaceID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"workshop": ws})
}

// POST /api/workshops/purchase
func (h *WorkshopHandler) Purchase(c *gin.Context) {
	var req services.PurchaseSelection
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := h.workshops.Purchase(c.Request.Context(), middleware.WorkspaceID(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, result)
}

type scheduleRequest struct {
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	FacilitatorName string    `json:"facilitator_name"`
}

// POST /api/workshops/:id/schedule
func (h *WorkshopHandler) Schedule(c *gin.Context) {
	id, ok := workshopID(c)
	if !ok {
		return
	}
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	ws, err := h.workshops.Schedule(c.Request.Context(), middleware.WorkspaceID(c), id, req.ScheduledAt, req.FacilitatorName)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"workshop": ws})
}

// POST /api/workshops/:id/start
//
// Besides the status transition this opens the workshop's server-side
// session: its timer ticks from here on and checkpoints back through
// SyncTimer every interval.
func (h *WorkshopHandler) Start(c *gin.Context) {
	id, ok := workshopID(c)
	if !ok {
		return
	}
	workspaceID := middleware.WorkspaceID(c)
	result, err := h.workshops.Start(c.Request.Context(), workspaceID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.beginSession(c.Request.Context(), workspaceID, id)
	RespondOK(c, result)
}

func (h *WorkshopHandler) beginSession(ctx context.Context, workspaceID, id uuid.UUID) {
	if h.sessions == nil {
		return
	}
	ws, err := h.workshops.Get(ctx, workspaceID, id)
	if err != nil {
		return
	}
	h.sessions.Begin(ws, func(ctx context.Context, seconds int) error {
		_, err := h.workshops.SyncTimer(ctx, workspaceID, id, seconds)
		return err
	})
}

type saveStepRequest struct {
	Response    *string `json:"response,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// POST /api/workshops/:id/steps/:stepNumber
func (h *WorkshopHandler) SaveStep(c *gin.Context) {
	id, ok := workshopID(c)
	if !ok {
		return
	}
	stepNumber, err := strconv.Atoi(c.Param("stepNumber"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_step", err)
		return
	}
	var req saveStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := h.steps.SaveStep(c.Request.Context(), middleware.WorkspaceID(c), id, stepNumber, req.Response, req.IsCompleted)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if h.sessions != nil {
		if sess, ok := h.sessions.Get(id); ok {
			sess.ApplyServerStep(result.Step)
		}
	}
	RespondOK(c, result)
}

type syncTimerRequest struct {
	Seconds int `json:"seconds"`
}

// POST /api/workshops/:id/timer
func (h *WorkshopHandler) SyncTimer(c *gin.Context) {
	id, ok := workshopID(c)
	if !ok {
		return
	}
	var req syncTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	seconds, err := h.workshops.SyncTimer(c.Request.Context(), middleware.WorkspaceID(c), id, req.Seconds)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"timer_seconds": seconds})
}

type bookmarkRequest struct {
	Step *int `json:"step"`
}

// POST /api/workshops/:id/bookmark
func (h *WorkshopHandler) SetBookmark(c *gin.Context) {
	id, ok := workshopID(c)
	if !ok {
		return
	}
	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	bookmark, err := h.steps.SetBookmark(c.Request.Context(), middleware.WorkspaceID(c), id, req.Step)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"bookmark_step": bookmark})
}

// POST /api/workshops/:id/complete
func (h *WorkshopHandler) Complete(c *gin.Context) {
	id, ok := workshopID(c)
	if !ok {
		return
	}
	result, err := h.workshops.Complete(c.Request.Context(), middleware.WorkspaceID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if h.sessions != nil {
		h.sessions.End(id)
	}
	RespondOK(c, result)
}

// POST /api/workshops/:id/cancel
func (h *WorkshopHandler) Cancel(c *gin.Context) {
	id, ok := workshopID(c)
	if !ok {
		return
	}
	ws, err := h.workshops.Cancel(c.Request.Context(), middleware.WorkspaceID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if h.sessions != nil {
		h.sessions.End(id)
	}
	RespondOK(c, gin.H{"workshop": ws})
}

type addNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// POST /api/workshops/:id/notes
func (h *WorkshopHandler) AddNote(c *gin.Context) {
	id, ok := workshopID(c)
	if !ok {
		return
	}
	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	ws, err := h.workshops.AddNote(c.Request.Context(), middleware.WorkspaceID(c), id, req.Note)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"workshop": ws})
}

// POST /api/workshops/:id/report
func (h *WorkshopHandler) GenerateReport(c *gin.Context) {
	id, ok := workshopID(c)
	if !ok {
		return
	}
	ws, err := h.workshops.GenerateReport(c.Request.Context(), middleware.WorkspaceID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"workshop": ws})
}

type updateCanvasRequest struct {
	CanvasData   datatypes.JSON `json:"canvas_data"`
	CanvasLocked *bool          `json:"canvas_locked,omitempty"`
}

// PUT /api/workshops/:id/canvas
func (h *WorkshopHandler) UpdateCanvas(c *gin.Context) {
	id, ok := workshopID(c)
	if !ok {
		return
	}
	var req updateCanvasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	state, err := h.canvas.UpdateCanvas(c.Request.Context(), middleware.WorkspaceID(c), id, req.CanvasData, req.CanvasLocked)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, state)
}

// POST /api/workshops/:id/canvas/lock
func (h *WorkshopHandler) ToggleCanvasLock(c *gin.Context) {
	id, ok := workshopID(c)
	if !ok {
		return
	}
	locked, err := h.canvas.ToggleLock(c.Request.Context(), middleware.WorkspaceID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"canvas_locked": locked})
}
