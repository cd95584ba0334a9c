package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/brandforge/brandforge-backend/internal/logger"
)

// CheckpointInterval is how many accumulated running seconds pass between
// best-effort pushes of the timer value to the backing store.
const CheckpointInterval = 30

// CheckpointFunc persists the current elapsed seconds. Failures are swallowed
// here; the local counter stays authoritative until the next attempt.
type CheckpointFunc func(ctx context.Context, seconds int) error

// Timer is a monotonically increasing elapsed-seconds counter. It ticks once
// per second while running and checkpoints its value every
// CheckpointInterval accumulated seconds, plus unconditionally on Stop.
type Timer struct {
	mu              sync.Mutex
	log             *logger.Logger
	checkpoint      CheckpointFunc
	seconds         int
	running         bool
	sinceCheckpoint int

	done     chan struct{}
	stopOnce sync.Once
}

func NewTimer(log *logger.Logger, seconds int, checkpoint CheckpointFunc) *Timer {
	if seconds < 0 {
		seconds = 0
	}
	return &Timer{
		log:        log.With("component", "WorkshopTimer"),
		checkpoint: checkpoint,
		seconds:    seconds,
		done:       make(chan struct{}),
	}
}

// Run drives the timer off wall-clock ticks until Close is called. The loop
// must not outlive the session view.
func (t *Timer) Run() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.Tick()
		}
	}
}

// Tick advances the counter by one second while running. Exposed so the loop
// and tests share the exact same path.
func (t *Timer) Tick() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.seconds++
	t.sinceCheckpoint++
	shouldSync := t.sinceCheckpoint >= CheckpointInterval
	if shouldSync {
		t.sinceCheckpoint = 0
	}
	seconds := t.seconds
	t.mu.Unlock()

	if shouldSync {
		// fire-and-forget: the push must never block the tick
		go t.sync(seconds)
	}
}

func (t *Timer) sync(seconds int) {
	if t.checkpoint == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := t.checkpoint(ctx, seconds); err != nil {
		t.log.Warn("timer checkpoint sync failed", "seconds", seconds, "error", err)
	}
}

// Start begins (or resumes) counting. Idempotent.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = true
}

// Stop pauses the counter and attempts one unconditional final checkpoint.
func (t *Timer) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	t.sinceCheckpoint = 0
	seconds := t.seconds
	t.mu.Unlock()

	t.sync(seconds)
}

// Close stops the tick loop for good. Safe to call more than once.
func (t *Timer) Close() {
	t.Stop()
	t.stopOnce.Do(func() { close(t.done) })
}

func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Timer) Seconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seconds
}

// Reset zeroes the counter. Only an explicit external reset (a new workshop)
// may move the value backwards.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seconds = 0
	t.sinceCheckpoint = 0
}

// Elapsed formats the counter as H:MM:SS past the first hour, MM:SS below it.
func (t *Timer) Elapsed() string {
	return FormatElapsed(t.Seconds())
}

func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
