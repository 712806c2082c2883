package models

import "time"

// BlockedDate closes a calendar date for new bookings. Existing appointments
// on that date are not touched when it is added.
type BlockedDate struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date   time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	Reason string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
