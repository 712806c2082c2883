package appointment

import (
	"fmt"

	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked     Status = "booked"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusBooked, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses accept no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func InitialStatus() Status {
	return StatusBooked
}

// transitions is the full legal state graph:
// booked -> in_progress -> completed | cancelled, plus booked -> cancelled.
var transitions = map[Status][]Status{
	StatusBooked:     {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether moving from current to target is legal.
// The returned error names both statuses so the caller can render it.
func CanTransition(current, target Status) error {
	for _, next := range transitions[current] {
		if next == target {
			return nil
		}
	}
	return httperr.ErrBusinessDetails(
		httperr.CodeInvalidTransition,
		fmt.Sprintf("cannot transition from %q to %q", current, target),
		map[string]any{
			"current_status":   string(current),
			"requested_status": string(target),
		},
	)
}
