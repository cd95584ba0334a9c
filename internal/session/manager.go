package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/types"
)

// Manager tracks the live editing context for every running workshop on
// this instance. A workshop gets exactly one session, opened when it starts
// and torn down when it completes or is cancelled; teardown performs the
// timer's final checkpoint push.
type Manager struct {
	mu       sync.Mutex
	log      *logger.Logger
	base     *logger.Logger
	sessions map[uuid.UUID]*Session
}

func NewManager(log *logger.Logger) *Manager {
	return &Manager{
		log:      log.With("component", "SessionManager"),
		base:     log,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Begin opens the session for a workshop and starts its timer loop. Calling
// Begin for a workshop that already has a session returns the existing one
// untouched, so re-entering a running workshop keeps the accumulated timer.
func (m *Manager) Begin(ws *types.Workshop, checkpoint CheckpointFunc) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[ws.ID]; ok {
		return s
	}
	s := New(m.base, ws, checkpoint)
	m.sessions[ws.ID] = s
	go s.Timer.Run()
	s.Timer.Start()
	m.log.Debug("Session opened", "workshop_id", ws.ID, "timer_seconds", s.Timer.Seconds())
	return s
}

func (m *Manager) Get(workshopID uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[workshopID]
	return s, ok
}

// End tears the workshop's session down. It is a no-op for a workshop
// without a session, so the completion and cancellation paths can call it
// unconditionally.
func (m *Manager) End(workshopID uuid.UUID) {
	m.mu.Lock()
	s, ok := m.sessions[workshopID]
	if ok {
		delete(m.sessions, workshopID)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	s.Close()
	m.log.Debug("Session closed", "workshop_id", workshopID, "timer_seconds", s.Timer.Seconds())
}

// Close ends every live session, pushing each timer's final checkpoint.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}
