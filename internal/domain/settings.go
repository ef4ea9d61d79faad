package domain

import "time"

// CoachSettings is the persisted per-coach booking configuration: the
// availability policy plus integration fields that are not part of the
// slot math itself.
type CoachSettings struct {
	ID               int64
	Policy           AvailabilityPolicy
	GoogleCalendarID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
