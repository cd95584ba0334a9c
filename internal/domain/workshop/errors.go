package workshop

import "errors"

var (
	// ErrInvalidStep is returned when a step number falls outside 1..TotalSteps.
	ErrInvalidStep = errors.New("invalid step number")
	// ErrLocked is returned when a canvas mutation is attempted while the canvas is locked.
	ErrLocked = errors.New("canvas is locked")
	// ErrInvalidTransition is returned when a lifecycle action is illegal for the current status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNotFound is returned when a workshop or asset does not resolve inside the caller's workspace.
	ErrNotFound = errors.New("not found")
)
