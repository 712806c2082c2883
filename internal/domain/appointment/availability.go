package appointment

import (
	"time"

	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
	"github.com/AutoCareServices/carcare-scheduler/internal/models"
)

const dateLayout = "2006-01-02"

// DateSet is a calendar-day lookup used for blocked-date checks.
type DateSet map[string]struct{}

func NewDateSet(dates []models.BlockedDate) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set[d.Date.Format(dateLayout)] = struct{}{}
	}
	return set
}

func (s DateSet) Contains(date time.Time) bool {
	_, ok := s[date.Format(dateLayout)]
	return ok
}

// MinBookableDate is the earliest calendar day a service may be booked for:
// today plus the service's preparation lead time, midnight-truncated.
func MinBookableDate(today time.Time, preparationDays int) time.Time {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return day.AddDate(0, 0, preparationDays)
}

// ValidateBooking runs every booking-time availability check against a
// proposed date. It is pure: all state it needs is passed in, so any number
// of concurrent callers may share it.
func ValidateBooking(
	svc *models.Service,
	proposed time.Time,
	today time.Time,
	blocked DateSet,
) error {

	if !svc.Active {
		return httperr.ErrBusinessMsg(
			httperr.CodeServiceUnavailable,
			"service is not currently offered",
		)
	}

	minDate := MinBookableDate(today, svc.PreparationDays)
	if proposed.Before(minDate) {
		return httperr.ErrBusinessDetails(
			httperr.CodeLeadTimeViolation,
			"earliest bookable date for this service is "+minDate.Format(dateLayout),
			map[string]any{
				"earliest_date":    minDate.Format(dateLayout),
				"preparation_days": svc.PreparationDays,
			},
		)
	}

	if blocked.Contains(proposed) {
		return httperr.ErrBusinessDetails(
			httperr.CodeDateBlocked,
			"the requested date is closed for bookings",
			map[string]any{"date": proposed.Format(dateLayout)},
		)
	}

	return nil
}
