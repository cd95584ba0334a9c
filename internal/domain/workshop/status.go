package workshop

import "fmt"

// Status is the lifecycle state of a workshop record.
type Status string

const (
	StatusToBuy      Status = "TO_BUY"
	StatusPurchased  Status = "PURCHASED"
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// transitions is the full set of legal lifecycle moves. CANCELLED is reachable
// from every pre-COMPLETED state; COMPLETED and CANCELLED are terminal.
var transitions = map[Status][]Status{
	StatusToBuy:      {StatusPurchased, StatusCancelled},
	StatusPurchased:  {StatusScheduled, StatusInProgress, StatusCancelled},
	StatusScheduled:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further lifecycle transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Editable reports whether step responses and canvas data accept ordinary
// edits. Notes and exports stay writable after completion and are not gated
// by this.
func (s Status) Editable() bool {
	return s != StatusCompleted && s != StatusCancelled
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates and returns the target status, or ErrInvalidTransition.
func Transition(from, to Status) (Status, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return to, nil
}

// StartTarget resolves the status a session-start request should land in.
// Starting an IN_PROGRESS workshop is an idempotent no-op; starting a
// terminal workshop is an error.
func StartTarget(current Status) (Status, bool, error) {
	switch current {
	case StatusInProgress:
		return current, false, nil
	case StatusPurchased, StatusScheduled:
		return StatusInProgress, true, nil
	default:
		return current, false, fmt.Errorf("%w: cannot start workshop in status %s", ErrInvalidTransition, current)
	}
}
