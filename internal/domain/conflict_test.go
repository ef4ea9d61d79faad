package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeBooking(t *testing.T, date time.Time, start string, durationMinutes int) *Booking {
	t.Helper()
	return &Booking{
		ID:              1,
		CoachID:         1,
		BookingDate:     date,
		StartTime:       mustTime(t, start),
		DurationMinutes: durationMinutes,
		Status:          StatusConfirmed,
	}
}

func at(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC)
}

func TestBuildConflictIndex_BookingsArePaddedWithBuffers(t *testing.T) {
	p := testPolicy(60, 10, 15, DaySchedule{})
	bookings := []*Booking{activeBooking(t, monday, "10:00", 60)}

	index, err := BuildConflictIndex(bookings, nil, p, time.UTC)
	require.NoError(t, err)
	require.Equal(t, 1, index.Len())

	// Занятый интервал: [09:50, 11:15)
	assert.True(t, index.Overlaps(at(monday, 9, 50), at(monday, 10, 50)))
	assert.True(t, index.Overlaps(at(monday, 11, 0), at(monday, 12, 0)))

	// Границы half-open: примыкание не является конфликтом
	assert.False(t, index.Overlaps(at(monday, 8, 50), at(monday, 9, 50)))
	assert.False(t, index.Overlaps(at(monday, 11, 15), at(monday, 12, 15)))
}

func TestBuildConflictIndex_CancelledBookingsAreIgnored(t *testing.T) {
	p := testPolicy(60, 0, 0, DaySchedule{})
	cancelled := activeBooking(t, monday, "10:00", 60)
	cancelled.Status = StatusCancelled

	index, err := BuildConflictIndex([]*Booking{cancelled}, nil, p, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, 0, index.Len())
	assert.False(t, index.Overlaps(at(monday, 10, 0), at(monday, 11, 0)))
}

func TestBuildConflictIndex_BusyIntervalsEnterUnpadded(t *testing.T) {
	p := testPolicy(60, 30, 30, DaySchedule{})
	busy := []BusyInterval{
		{Start: at(monday, 12, 0), End: at(monday, 13, 0)},
	}

	index, err := BuildConflictIndex(nil, busy, p, time.UTC)
	require.NoError(t, err)

	// Буферы политики не применяются к внешней занятости
	assert.False(t, index.Overlaps(at(monday, 11, 0), at(monday, 12, 0)))
	assert.False(t, index.Overlaps(at(monday, 13, 0), at(monday, 14, 0)))
	assert.True(t, index.Overlaps(at(monday, 12, 30), at(monday, 13, 30)))
}

func TestBuildConflictIndex_InvalidBusyIntervalsAreSkipped(t *testing.T) {
	p := testPolicy(60, 0, 0, DaySchedule{})
	busy := []BusyInterval{
		{Start: at(monday, 13, 0), End: at(monday, 12, 0)}, // конец раньше начала
		{Start: at(monday, 14, 0), End: at(monday, 14, 0)}, // пустой
	}

	index, err := BuildConflictIndex(nil, busy, p, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 0, index.Len())
}

func TestBuildConflictIndex_TouchingIntervalsAreMerged(t *testing.T) {
	p := testPolicy(60, 0, 0, DaySchedule{})
	bookings := []*Booking{
		activeBooking(t, monday, "10:00", 60),
		activeBooking(t, monday, "11:00", 60),
	}
	busy := []BusyInterval{
		{Start: at(monday, 11, 30), End: at(monday, 12, 30)},
	}

	index, err := BuildConflictIndex(bookings, busy, p, time.UTC)
	require.NoError(t, err)

	// [10:00,11:00) + [11:00,12:00) + [11:30,12:30) → один интервал [10:00,12:30)
	assert.Equal(t, 1, index.Len())
	assert.True(t, index.Overlaps(at(monday, 11, 0), at(monday, 11, 30)))
	assert.False(t, index.Overlaps(at(monday, 12, 30), at(monday, 13, 30)))
}

func TestOverlaps_EmptyIndex(t *testing.T) {
	p := testPolicy(60, 0, 0, DaySchedule{})
	index, err := BuildConflictIndex(nil, nil, p, time.UTC)
	require.NoError(t, err)

	assert.False(t, index.Overlaps(at(monday, 10, 0), at(monday, 11, 0)))
}
