package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func windowPolicy(minNoticeHours, maxAdvanceDays int) *AvailabilityPolicy {
	return &AvailabilityPolicy{
		CoachID:             1,
		Enabled:             true,
		SlotDurationMinutes: 60,
		MinNoticeHours:      minNoticeHours,
		MaxAdvanceDays:      maxAdvanceDays,
		Timezone:            "UTC",
	}
}

func TestWithinBookingWindow_MinNoticeBoundaryIsExcluded(t *testing.T) {
	p := windowPolicy(24, 30)
	now := time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{
			name:  "ровно на границе notice — недоступен",
			start: now.Add(24 * time.Hour),
			want:  false,
		},
		{
			name:  "минутой позже границы — доступен",
			start: now.Add(24*time.Hour + time.Minute),
			want:  true,
		},
		{
			name:  "раньше границы — недоступен",
			start: now.Add(23 * time.Hour),
			want:  false,
		},
		{
			name:  "в прошлом — недоступен",
			start: now.Add(-time.Hour),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinBookingWindow(tt.start, now, p, time.UTC))
		})
	}
}

func TestWithinBookingWindow_MaxAdvanceBoundaryDayIsIncluded(t *testing.T) {
	p := windowPolicy(0, 30)
	now := time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)

	// Последний день окна доступен целиком, даже поздним вечером
	boundaryEvening := time.Date(2025, 11, 12, 23, 0, 0, 0, time.UTC)
	assert.True(t, WithinBookingWindow(boundaryEvening, now, p, time.UTC))

	// Следующий день уже недоступен
	beyond := time.Date(2025, 11, 13, 9, 0, 0, 0, time.UTC)
	assert.False(t, WithinBookingWindow(beyond, now, p, time.UTC))
}

func TestWithinBookingWindow_AdvanceCountedInPolicyTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	p := windowPolicy(0, 1)
	// 01:00 UTC = предыдущий день вечером в Нью-Йорке
	now := time.Date(2025, 10, 14, 1, 0, 0, 0, time.UTC)

	// В поясе тренера сейчас ещё 13-е, значит 14-е в окне одного дня
	start := time.Date(2025, 10, 14, 18, 0, 0, 0, loc)
	assert.True(t, WithinBookingWindow(start, now, p, loc))

	// А 15-е — уже за границей
	tooFar := time.Date(2025, 10, 15, 9, 0, 0, 0, loc)
	assert.False(t, WithinBookingWindow(tooFar, now, p, loc))
}
