package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPolicy(t *testing.T) *AvailabilityPolicy {
	return &AvailabilityPolicy{
		CoachID:             1,
		Enabled:             true,
		SlotDurationMinutes: 60,
		BufferBeforeMinutes: 10,
		BufferAfterMinutes:  15,
		MinNoticeHours:      24,
		MaxAdvanceDays:      30,
		Timezone:            "Europe/Berlin",
		Week: WeeklySchedule{
			Monday: DaySchedule{
				Enabled: true,
				Intervals: []TimeInterval{
					interval(t, "09:00", "12:00"),
					interval(t, "14:00", "18:00"),
				},
			},
		},
	}
}

func TestPolicyValidate_Valid(t *testing.T) {
	assert.NoError(t, validPolicy(t).Validate())
}

func TestPolicyValidate_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *AvailabilityPolicy)
	}{
		{"слишком короткий сеанс", func(p *AvailabilityPolicy) { p.SlotDurationMinutes = 1 }},
		{"слишком длинный сеанс", func(p *AvailabilityPolicy) { p.SlotDurationMinutes = 500 }},
		{"отрицательный буфер до", func(p *AvailabilityPolicy) { p.BufferBeforeMinutes = -5 }},
		{"слишком большой буфер после", func(p *AvailabilityPolicy) { p.BufferAfterMinutes = 300 }},
		{"отрицательный notice", func(p *AvailabilityPolicy) { p.MinNoticeHours = -1 }},
		{"превышен лимит advance", func(p *AvailabilityPolicy) { p.MaxAdvanceDays = 400 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPolicy(t)
			tt.mutate(p)
			err := p.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPolicy)
		})
	}
}

func TestPolicyValidate_ZeroWindowIsValid(t *testing.T) {
	// maxAdvanceDays=0 означает "только сегодня", minNoticeHours=0 — без
	// предварительного уведомления; оба значения допустимы
	p := validPolicy(t)
	p.MinNoticeHours = 0
	p.MaxAdvanceDays = 0

	assert.NoError(t, p.Validate())
}

func TestPolicyValidate_UnknownTimezone(t *testing.T) {
	p := validPolicy(t)
	p.Timezone = "Mars/Olympus"

	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestPolicyValidate_IntervalStartNotBeforeEnd(t *testing.T) {
	p := validPolicy(t)
	p.Week.Monday.Intervals = []TimeInterval{interval(t, "12:00", "09:00")}

	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestPolicyValidate_OverlappingIntervals(t *testing.T) {
	p := validPolicy(t)
	p.Week.Monday.Intervals = []TimeInterval{
		interval(t, "09:00", "12:00"),
		interval(t, "11:00", "14:00"),
	}

	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestPolicyValidate_TouchingIntervalsAllowed(t *testing.T) {
	p := validPolicy(t)
	p.Week.Monday.Intervals = []TimeInterval{
		interval(t, "09:00", "12:00"),
		interval(t, "12:00", "15:00"),
	}

	assert.NoError(t, p.Validate())
}

// Выключенный день с непустыми интервалами валиден: расписание сохраняется,
// но кандидатов не порождает
func TestPolicyValidate_DisabledDayKeepsIntervals(t *testing.T) {
	p := validPolicy(t)
	p.Week.Tuesday = DaySchedule{
		Enabled:   false,
		Intervals: []TimeInterval{interval(t, "09:00", "12:00")},
	}

	assert.NoError(t, p.Validate())
}

func TestPolicyLocation(t *testing.T) {
	p := validPolicy(t)
	loc, err := p.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())

	p.Timezone = "Nowhere/Nothing"
	_, err = p.Location()
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestWeeklyScheduleFor(t *testing.T) {
	week := WeeklySchedule{
		Wednesday: DaySchedule{Enabled: true},
	}

	assert.True(t, week.For(time.Wednesday).Enabled)
	assert.False(t, week.For(time.Thursday).Enabled)
	assert.False(t, week.For(time.Sunday).Enabled)
}
