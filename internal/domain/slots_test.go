package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachflow/CF-BookingService/pkg/types"
)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func interval(t *testing.T, start, end string) TimeInterval {
	t.Helper()
	return TimeInterval{Start: mustTime(t, start), End: mustTime(t, end)}
}

func testPolicy(duration, bufferBefore, bufferAfter int, monday DaySchedule) *AvailabilityPolicy {
	return &AvailabilityPolicy{
		CoachID:             1,
		Enabled:             true,
		SlotDurationMinutes: duration,
		BufferBeforeMinutes: bufferBefore,
		BufferAfterMinutes:  bufferAfter,
		MinNoticeHours:      24,
		MaxAdvanceDays:      30,
		Timezone:            "UTC",
		Week:                WeeklySchedule{Monday: monday},
	}
}

// 2025-10-13 is a Monday
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func TestGenerateSlots_StrideIncludesBufferAfter(t *testing.T) {
	p := testPolicy(60, 10, 15, DaySchedule{
		Enabled:   true,
		Intervals: []TimeInterval{interval(t, "09:00", "17:00")},
	})

	slots, err := GenerateSlots(monday, p)
	require.NoError(t, err)

	// Шаг 75 минут, последний сеанс должен целиком поместиться до 17:00
	expected := []string{"09:00", "10:15", "11:30", "12:45", "14:00", "15:15"}
	require.Len(t, slots, len(expected))
	for i, want := range expected {
		assert.Equal(t, want, slots[i].String())
	}
}

func TestGenerateSlots_SessionMustFitIntervalEnd(t *testing.T) {
	p := testPolicy(60, 0, 0, DaySchedule{
		Enabled:   true,
		Intervals: []TimeInterval{interval(t, "09:00", "10:30")},
	})

	slots, err := GenerateSlots(monday, p)
	require.NoError(t, err)

	// 09:30 не помещается: сеанс закончился бы в 10:30+, интервал до 10:30
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].String())
}

func TestGenerateSlots_ExactFitAtIntervalEnd(t *testing.T) {
	p := testPolicy(30, 0, 0, DaySchedule{
		Enabled:   true,
		Intervals: []TimeInterval{interval(t, "09:00", "10:00")},
	})

	slots, err := GenerateSlots(monday, p)
	require.NoError(t, err)

	// Сеанс, заканчивающийся ровно в конце интервала, допустим
	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].String())
	assert.Equal(t, "09:30", slots[1].String())
}

func TestGenerateSlots_DisabledDayYieldsNothing(t *testing.T) {
	p := testPolicy(60, 0, 0, DaySchedule{
		Enabled:   false,
		Intervals: []TimeInterval{interval(t, "09:00", "17:00")},
	})

	slots, err := GenerateSlots(monday, p)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_MultipleIntervalsConcatenated(t *testing.T) {
	p := testPolicy(60, 0, 0, DaySchedule{
		Enabled: true,
		Intervals: []TimeInterval{
			interval(t, "09:00", "11:00"),
			interval(t, "14:00", "16:00"),
		},
	})

	slots, err := GenerateSlots(monday, p)
	require.NoError(t, err)

	expected := []string{"09:00", "10:00", "14:00", "15:00"}
	require.Len(t, slots, len(expected))
	for i, want := range expected {
		assert.Equal(t, want, slots[i].String())
	}
}

func TestGenerateSlots_BufferBeforeDoesNotWidenStride(t *testing.T) {
	withBuffer := testPolicy(60, 30, 0, DaySchedule{
		Enabled:   true,
		Intervals: []TimeInterval{interval(t, "09:00", "12:00")},
	})
	withoutBuffer := testPolicy(60, 0, 0, DaySchedule{
		Enabled:   true,
		Intervals: []TimeInterval{interval(t, "09:00", "12:00")},
	})

	a, err := GenerateSlots(monday, withBuffer)
	require.NoError(t, err)
	b, err := GenerateSlots(monday, withoutBuffer)
	require.NoError(t, err)

	assert.Equal(t, b, a)
}

func TestGenerateSlots_IntervalShorterThanSession(t *testing.T) {
	p := testPolicy(60, 0, 0, DaySchedule{
		Enabled:   true,
		Intervals: []TimeInterval{interval(t, "09:00", "09:45")},
	})

	slots, err := GenerateSlots(monday, p)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
