// Package session holds the per-workshop editing context: the step cursor,
// the optimistic completion overlay, the bookmark and the timer. One context
// lives for exactly one active workshop session and is torn down with it;
// nothing here is shared across sessions.
package session

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	domain "github.com/brandforge/brandforge-backend/internal/domain/workshop"
	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/types"
)

type Session struct {
	mu  sync.Mutex
	log *logger.Logger

	WorkshopID uuid.UUID
	Timer      *Timer

	currentStep int
	bookmark    *int

	// serverCompleted is the authoritative snapshot; localCompleted is the
	// optimistic overlay for saves not yet confirmed. Progress merges the
	// two by union, so a locally saved step counts immediately and a server
	// confirmation never un-counts anything.
	serverCompleted map[int]bool
	localCompleted  map[int]bool
	responses       map[int]string
}

// New seeds a session context from the server's workshop snapshot.
func New(log *logger.Logger, ws *types.Workshop, checkpoint CheckpointFunc) *Session {
	s := &Session{
		log:             log.With("component", "WorkshopSession", "workshop_id", ws.ID),
		WorkshopID:      ws.ID,
		Timer:           NewTimer(log, ws.TimerSeconds, checkpoint),
		currentStep:     domain.ClampStep(ws.CurrentStep),
		bookmark:        ws.BookmarkStep,
		serverCompleted: make(map[int]bool, domain.TotalSteps),
		localCompleted:  make(map[int]bool, domain.TotalSteps),
		responses:       make(map[int]string, domain.TotalSteps),
	}
	for _, step := range ws.Steps {
		if step.IsCompleted {
			s.serverCompleted[step.StepNumber] = true
		}
		if step.Response != nil {
			s.responses[step.StepNumber] = *step.Response
		}
	}
	return s
}

// Close tears the session down, cancelling the timer loop.
func (s *Session) Close() {
	s.Timer.Close()
}

func (s *Session) CurrentStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentStep
}

// Next moves the cursor forward, clamped to the template. Never fails and is
// independent of completion state.
func (s *Session) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentStep = domain.ClampStep(s.currentStep + 1)
	return s.currentStep
}

// Previous moves the cursor back, clamped to the template.
func (s *Session) Previous() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentStep = domain.ClampStep(s.currentStep - 1)
	return s.currentStep
}

// GoTo jumps the cursor to a step, clamped to the template.
func (s *Session) GoTo(step int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentStep = domain.ClampStep(step)
	return s.currentStep
}

// ApplyLocalSave records an optimistic save before server confirmation.
func (s *Session) ApplyLocalSave(step int, response string, completed bool) error {
	if err := domain.CheckStep(step); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[step] = response
	if completed {
		s.localCompleted[step] = true
	}
	return nil
}

// ApplyServerStep folds a confirmed server row back into the snapshot and
// drops the matching overlay entry.
func (s *Session) ApplyServerStep(step *types.WorkshopStep) {
	if step == nil || !domain.ValidStep(step.StepNumber) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if step.IsCompleted {
		s.serverCompleted[step.StepNumber] = true
	}
	if step.Response != nil {
		s.responses[step.StepNumber] = *step.Response
	}
	delete(s.localCompleted, step.StepNumber)
}

// Response returns the prefill text for a step.
func (s *Session) Response(step int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.responses[step]
}

// CompletedSteps returns the union of server-confirmed and locally saved
// completions, sorted.
func (s *Session) CompletedSteps() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := make(map[int]bool, domain.TotalSteps)
	for n := range s.serverCompleted {
		set[n] = true
	}
	for n := range s.localCompleted {
		set[n] = true
	}
	steps := make([]int, 0, len(set))
	for n := range set {
		steps = append(steps, n)
	}
	sort.Ints(steps)
	return steps
}

// Progress is the merged completion percentage.
func (s *Session) Progress() float64 {
	return domain.Progress(len(s.CompletedSteps()))
}

// ToggleBookmark sets the single highlighted step; bookmarking the already
// bookmarked step clears it.
func (s *Session) ToggleBookmark(step int) (*int, error) {
	if err := domain.CheckStep(step); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bookmark != nil && *s.bookmark == step {
		s.bookmark = nil
	} else {
		n := step
		s.bookmark = &n
	}
	return s.bookmark, nil
}

func (s *Session) Bookmark() *int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookmark
}
