package booking

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a reservation. The set is closed:
// callers cannot store arbitrary status strings, and transitions are
// validated explicitly. A reservation is created as CONFIRMED and may
// move to CANCELLED or COMPLETED, both of which are terminal.
type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// ParseStatus normalizes a caller-supplied status string and rejects
// anything outside the closed set.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusCancelled:
		return StatusCancelled, nil
	case StatusCompleted:
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, raw)
}

// CanTransition reports whether a reservation in state s may move to
// next. Setting the same state again is a no-op and always allowed.
// CANCELLED and COMPLETED are terminal.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted
	}
	return false
}
