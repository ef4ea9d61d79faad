package domain

import (
	"time"

	"github.com/coachflow/CF-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// CancelledBy identifies which side cancelled a booking
type CancelledBy string

const (
	CancelledByClient CancelledBy = "client"
	CancelledByCoach  CancelledBy = "coach"
)

// Booking represents a committed appointment in a coach's calendar.
// The tuple (CoachID, BookingDate, StartTime) is unique among non-cancelled
// bookings; this invariant is enforced by storage and is what makes a
// reservation race resolve to exactly one winner.
type Booking struct {
	ID              int64
	CoachID         int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int // copied from the policy at creation time, immutable afterwards
	Status          BookingStatus

	ClientName  string
	ClientEmail string
	Notes       *string

	CancellationReason *string
	CancelledBy        *CancelledBy
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can transition to cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// EndTime returns the wall-clock end of the booking
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// CoachBookingsFilter фильтр для получения бронирований коуча
type CoachBookingsFilter struct {
	CoachID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}
