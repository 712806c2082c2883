package appointment

import (
	"testing"
	"time"

	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
	"github.com/AutoCareServices/carcare-scheduler/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateBooking_OK(t *testing.T) {
	svc := &models.Service{PreparationDays: 2, Active: true}
	today := day(2025, 3, 10)

	if err := ValidateBooking(svc, day(2025, 3, 13), today, DateSet{}); err != nil {
		t.Fatalf("expected valid booking, got %v", err)
	}
}

func TestValidateBooking_LeadTimeViolation(t *testing.T) {
	svc := &models.Service{PreparationDays: 2, Active: true}
	today := day(2025, 3, 10)

	// Tomorrow is inside the two-day preparation window.
	err := ValidateBooking(svc, day(2025, 3, 11), today, DateSet{})
	if !httperr.IsBusiness(err, httperr.CodeLeadTimeViolation) {
		t.Fatalf("expected lead_time_violation, got %v", err)
	}

	be, _ := httperr.AsBusiness(err)
	if be.Details["earliest_date"] != "2025-03-12" {
		t.Errorf("expected earliest_date 2025-03-12, got %v", be.Details["earliest_date"])
	}
}

func TestValidateBooking_MinDateIsInclusive(t *testing.T) {
	svc := &models.Service{PreparationDays: 2, Active: true}
	today := day(2025, 3, 10)

	if err := ValidateBooking(svc, day(2025, 3, 12), today, DateSet{}); err != nil {
		t.Fatalf("booking exactly at today+preparation_days must pass, got %v", err)
	}
}

func TestValidateBooking_DateBlocked(t *testing.T) {
	svc := &models.Service{PreparationDays: 0, Active: true}
	today := day(2025, 3, 10)

	blocked := NewDateSet([]models.BlockedDate{
		{Date: day(2025, 3, 15), Reason: "inventory day"},
	})

	err := ValidateBooking(svc, day(2025, 3, 15), today, blocked)
	if !httperr.IsBusiness(err, httperr.CodeDateBlocked) {
		t.Fatalf("expected date_blocked, got %v", err)
	}
}

func TestValidateBooking_BlockedWinsEvenWithLeadTimeSatisfied(t *testing.T) {
	svc := &models.Service{PreparationDays: 1, Active: true}
	today := day(2025, 3, 10)

	blocked := NewDateSet([]models.BlockedDate{{Date: day(2025, 3, 20)}})

	err := ValidateBooking(svc, day(2025, 3, 20), today, blocked)
	if !httperr.IsBusiness(err, httperr.CodeDateBlocked) {
		t.Fatalf("expected date_blocked, got %v", err)
	}
}

func TestValidateBooking_InactiveService(t *testing.T) {
	svc := &models.Service{PreparationDays: 0, Active: false}
	today := day(2025, 3, 10)

	err := ValidateBooking(svc, day(2025, 3, 20), today, DateSet{})
	if !httperr.IsBusiness(err, httperr.CodeServiceUnavailable) {
		t.Fatalf("expected service_unavailable, got %v", err)
	}
}

func TestMinBookableDate_TruncatesTimeOfDay(t *testing.T) {
	today := time.Date(2025, 3, 10, 17, 45, 0, 0, time.UTC)

	got := MinBookableDate(today, 3)
	want := day(2025, 3, 13)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
