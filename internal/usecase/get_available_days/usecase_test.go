package get_available_days

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachflow/CF-BookingService/internal/domain"
	settingsRepo "github.com/coachflow/CF-BookingService/internal/infra/storage/settings"
	"github.com/coachflow/CF-BookingService/pkg/types"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	bookings []*domain.Booking
	calls    int
}

func (f *fakeBookingRepo) GetByCoachWithFilter(_ context.Context, _ domain.CoachBookingsFilter) ([]*domain.Booking, error) {
	f.calls++
	return f.bookings, nil
}

type fakeSettingsRepo struct {
	settings *domain.CoachSettings
	err      error
}

func (f *fakeSettingsRepo) GetByCoachID(_ context.Context, _ int64) (*domain.CoachSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

type fakeCalendar struct {
	busy []domain.BusyInterval
	err  error
}

func (f *fakeCalendar) BusyIntervals(_ context.Context, _ string, _, _ time.Time) ([]domain.BusyInterval, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.busy, nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

// 2025-10-13 — понедельник
var testMonday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

// weekdaySettings открывает запись по будням с 09:00 до 11:00
func weekdaySettings(t *testing.T) *domain.CoachSettings {
	t.Helper()

	day := domain.DaySchedule{
		Enabled: true,
		Intervals: []domain.TimeInterval{
			{Start: ts(t, "09:00"), End: ts(t, "11:00")},
		},
	}

	return &domain.CoachSettings{
		ID: 1,
		Policy: domain.AvailabilityPolicy{
			CoachID:             1,
			Enabled:             true,
			SlotDurationMinutes: 60,
			MinNoticeHours:      0,
			MaxAdvanceDays:      30,
			Timezone:            "UTC",
			Week: domain.WeeklySchedule{
				Monday:    day,
				Tuesday:   day,
				Wednesday: day,
				Thursday:  day,
				Friday:    day,
			},
		},
	}
}

func newTestUseCase(bookings *fakeBookingRepo, settings *fakeSettingsRepo, cal *fakeCalendar, now time.Time) *UseCase {
	uc := NewUseCase(bookings, settings, cal, nopLogger{})
	uc.timeProvider = &fixedClock{now: now}
	return uc
}

// Тесты

func TestExecute_WeekendDaysAreSkipped(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC) // воскресенье
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{settings: weekdaySettings(t)}, &fakeCalendar{}, now)

	resp, err := uc.Execute(context.Background(), &Request{CoachID: 1, From: testMonday, Days: 7})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"2025-10-13", "2025-10-14", "2025-10-15", "2025-10-16", "2025-10-17",
	}, resp.Days)
}

func TestExecute_DefaultScanWidth(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{settings: weekdaySettings(t)}, &fakeCalendar{}, now)

	resp, err := uc.Execute(context.Background(), &Request{CoachID: 1, From: testMonday})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-13", resp.From)
	assert.Equal(t, "2025-10-19", resp.To)
}

func TestExecute_FullyBookedDayIsExcluded(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	// Вторник занят целиком: оба слота 09:00 и 10:00
	tuesday := testMonday.AddDate(0, 0, 1)
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, CoachID: 1, BookingDate: tuesday, StartTime: ts(t, "09:00"), DurationMinutes: 60, Status: domain.StatusConfirmed},
		{ID: 2, CoachID: 1, BookingDate: tuesday, StartTime: ts(t, "10:00"), DurationMinutes: 60, Status: domain.StatusPending},
	}}

	uc := newTestUseCase(repo, &fakeSettingsRepo{settings: weekdaySettings(t)}, &fakeCalendar{}, now)

	resp, err := uc.Execute(context.Background(), &Request{CoachID: 1, From: testMonday, Days: 5})
	require.NoError(t, err)

	assert.NotContains(t, resp.Days, "2025-10-14")
	assert.Contains(t, resp.Days, "2025-10-13")
	// Бронирования на весь период запрашиваются одним запросом
	assert.Equal(t, 1, repo.calls)
}

func TestExecute_PartiallyBookedDayStaysAvailable(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, CoachID: 1, BookingDate: testMonday, StartTime: ts(t, "09:00"), DurationMinutes: 60, Status: domain.StatusConfirmed},
	}}

	uc := newTestUseCase(repo, &fakeSettingsRepo{settings: weekdaySettings(t)}, &fakeCalendar{}, now)

	resp, err := uc.Execute(context.Background(), &Request{CoachID: 1, From: testMonday, Days: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-10-13"}, resp.Days)
}

func TestExecute_WindowClampedByToday(t *testing.T) {
	// Сегодня среда 15-е, окно запрошено с понедельника
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{settings: weekdaySettings(t)}, &fakeCalendar{}, now)

	resp, err := uc.Execute(context.Background(), &Request{CoachID: 1, From: testMonday, Days: 7})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-15", resp.From)
	assert.Equal(t, []string{"2025-10-15", "2025-10-16", "2025-10-17"}, resp.Days)
}

func TestExecute_WindowClampedByMaxAdvance(t *testing.T) {
	settings := weekdaySettings(t)
	settings.Policy.MaxAdvanceDays = 2

	now := time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{settings: settings}, &fakeCalendar{}, now)

	resp, err := uc.Execute(context.Background(), &Request{CoachID: 1, From: testMonday, Days: 14})
	require.NoError(t, err)

	// Граничный день включается
	assert.Equal(t, "2025-10-15", resp.To)
	assert.Equal(t, []string{"2025-10-13", "2025-10-14", "2025-10-15"}, resp.Days)
}

func TestExecute_WindowEntirelyInPast(t *testing.T) {
	now := time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{settings: weekdaySettings(t)}, &fakeCalendar{}, now)

	resp, err := uc.Execute(context.Background(), &Request{CoachID: 1, From: testMonday, Days: 5})
	require.NoError(t, err)
	assert.Empty(t, resp.Days)
}

func TestExecute_CalendarErrorFailsOpen(t *testing.T) {
	settings := weekdaySettings(t)
	calendarID := "coach@example.com"
	settings.GoogleCalendarID = &calendarID

	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{settings: settings}, &fakeCalendar{err: errors.New("calendar down")}, now)

	resp, err := uc.Execute(context.Background(), &Request{CoachID: 1, From: testMonday, Days: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-10-13"}, resp.Days)
}

func TestExecute_BookingDisabled(t *testing.T) {
	settings := weekdaySettings(t)
	settings.Policy.Enabled = false

	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{settings: settings}, &fakeCalendar{}, now)

	_, err := uc.Execute(context.Background(), &Request{CoachID: 1, From: testMonday, Days: 1})
	assert.ErrorIs(t, err, ErrBookingDisabled)
}

func TestExecute_MissingSettingsMeansDisabled(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{err: settingsRepo.ErrSettingsNotFound}, &fakeCalendar{}, now)

	_, err := uc.Execute(context.Background(), &Request{CoachID: 1, From: testMonday, Days: 1})
	assert.ErrorIs(t, err, ErrBookingDisabled)
}

func TestExecute_InputValidation(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{settings: weekdaySettings(t)}, &fakeCalendar{}, now)

	_, err := uc.Execute(context.Background(), &Request{CoachID: 0, From: testMonday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{CoachID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{CoachID: 1, From: testMonday, Days: MaxScanDays + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
