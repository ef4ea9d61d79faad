package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/coachflow/CF-BookingService/pkg/types"
)

var (
	// ErrInvalidPolicy is returned when a persisted availability policy fails
	// validation. The engine rejects such policies at load time and never
	// attempts to repair them.
	ErrInvalidPolicy = errors.New("domain: invalid availability policy")

	// ErrUnknownTimezone is returned when the policy timezone is not a valid
	// IANA zone identifier.
	ErrUnknownTimezone = errors.New("domain: unknown timezone")
)

// TimeInterval is a half-open [Start, End) range of wall-clock time within a day
type TimeInterval struct {
	Start types.TimeString
	End   types.TimeString
}

// DaySchedule describes a coach's availability on one weekday
type DaySchedule struct {
	Enabled   bool
	Intervals []TimeInterval
}

// WeeklySchedule describes availability for every weekday
type WeeklySchedule struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// For returns the schedule for the given weekday
func (s *WeeklySchedule) For(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	case time.Sunday:
		return s.Sunday
	default:
		return DaySchedule{}
	}
}

// AvailabilityPolicy is the immutable value object driving slot generation.
// It is owned by the coach's settings workflow; the engine reads the latest
// snapshot at request time and never mutates it.
type AvailabilityPolicy struct {
	CoachID int64
	Enabled bool

	SlotDurationMinutes int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	MinNoticeHours      int
	MaxAdvanceDays      int
	Timezone            string

	Week WeeklySchedule
}

// Location resolves the policy timezone
func (p *AvailabilityPolicy) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, p.Timezone)
	}
	return loc, nil
}

// Validate checks the policy invariants:
// - duration and buffers within business bounds
// - every interval has Start < End
// - intervals within a weekday are sorted ascending and non-overlapping
// A policy that fails validation is rejected, never silently corrected.
func (p *AvailabilityPolicy) Validate() error {
	if p.SlotDurationMinutes < MinSlotDurationMinutes || p.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration %d minutes is out of range [%d, %d]",
			ErrInvalidPolicy, p.SlotDurationMinutes, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	if p.BufferBeforeMinutes < 0 || p.BufferBeforeMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: buffer before %d minutes is out of range [0, %d]",
			ErrInvalidPolicy, p.BufferBeforeMinutes, MaxBufferMinutes)
	}
	if p.BufferAfterMinutes < 0 || p.BufferAfterMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: buffer after %d minutes is out of range [0, %d]",
			ErrInvalidPolicy, p.BufferAfterMinutes, MaxBufferMinutes)
	}
	if p.MinNoticeHours < 0 || p.MinNoticeHours > MinNoticeHoursLimit {
		return fmt.Errorf("%w: min notice %d hours is out of range [0, %d]",
			ErrInvalidPolicy, p.MinNoticeHours, MinNoticeHoursLimit)
	}
	if p.MaxAdvanceDays < 0 || p.MaxAdvanceDays > MaxAdvanceDaysLimit {
		return fmt.Errorf("%w: max advance %d days is out of range [0, %d]",
			ErrInvalidPolicy, p.MaxAdvanceDays, MaxAdvanceDaysLimit)
	}
	if _, err := time.LoadLocation(p.Timezone); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownTimezone, p.Timezone)
	}

	days := []struct {
		name     string
		schedule DaySchedule
	}{
		{"monday", p.Week.Monday},
		{"tuesday", p.Week.Tuesday},
		{"wednesday", p.Week.Wednesday},
		{"thursday", p.Week.Thursday},
		{"friday", p.Week.Friday},
		{"saturday", p.Week.Saturday},
		{"sunday", p.Week.Sunday},
	}

	for _, day := range days {
		if err := validateDayIntervals(day.name, day.schedule.Intervals); err != nil {
			return err
		}
	}

	return nil
}

func validateDayIntervals(day string, intervals []TimeInterval) error {
	var prevEnd types.TimeString

	for i, interval := range intervals {
		if err := interval.Start.Validate(); err != nil {
			return fmt.Errorf("%w: %s interval %d: %v", ErrInvalidPolicy, day, i, err)
		}
		if err := interval.End.Validate(); err != nil {
			return fmt.Errorf("%w: %s interval %d: %v", ErrInvalidPolicy, day, i, err)
		}
		if !interval.Start.IsBefore(interval.End) {
			return fmt.Errorf("%w: %s interval %d: start %s is not before end %s",
				ErrInvalidPolicy, day, i, interval.Start, interval.End)
		}
		if i > 0 && interval.Start.IsBefore(prevEnd) {
			return fmt.Errorf("%w: %s interval %d overlaps previous interval or breaks ascending order",
				ErrInvalidPolicy, day, i)
		}
		prevEnd = interval.End
	}

	return nil
}
