package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachflow/CF-BookingService/internal/domain"
	settingsRepo "github.com/coachflow/CF-BookingService/internal/infra/storage/settings"
	"github.com/coachflow/CF-BookingService/internal/service/settings/models"
	"github.com/coachflow/CF-BookingService/pkg/ptr"
	"github.com/coachflow/CF-BookingService/pkg/types"
)

// Фейки зависимостей

type fakeSettingsRepo struct {
	stored *domain.CoachSettings
	getErr error

	upserted *domain.CoachSettings
}

func (f *fakeSettingsRepo) GetByCoachID(_ context.Context, _ int64) (*domain.CoachSettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.stored, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, settings *domain.CoachSettings) (*domain.CoachSettings, error) {
	f.upserted = settings
	return settings, nil
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

func storedSettings(t *testing.T) *domain.CoachSettings {
	t.Helper()
	return &domain.CoachSettings{
		ID: 1,
		Policy: domain.AvailabilityPolicy{
			CoachID:             7,
			Enabled:             true,
			SlotDurationMinutes: 60,
			BufferAfterMinutes:  15,
			MinNoticeHours:      24,
			MaxAdvanceDays:      30,
			Timezone:            "Europe/Berlin",
			Week: domain.WeeklySchedule{
				Monday: domain.DaySchedule{
					Enabled: true,
					Intervals: []domain.TimeInterval{
						{Start: ts(t, "09:00"), End: ts(t, "17:00")},
					},
				},
			},
		},
	}
}

// Get

func TestGet_OnlyOwnerHasAccess(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{stored: storedSettings(t)}, nopLogger{})

	resp, err := svc.Get(context.Background(), 7, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.CoachID)
	assert.Equal(t, 60, resp.SlotDurationMinutes)
	assert.True(t, resp.Week.Monday.Enabled)

	_, err = svc.Get(context.Background(), 7, 8)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{getErr: settingsRepo.ErrSettingsNotFound}, nopLogger{})

	_, err := svc.Get(context.Background(), 7, 7)
	assert.ErrorIs(t, err, ErrSettingsNotFound)
}

// Update

func TestUpdate_PartialUpdateKeepsOtherFields(t *testing.T) {
	repo := &fakeSettingsRepo{stored: storedSettings(t)}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:              7,
		CoachID:             7,
		SlotDurationMinutes: ptr.Ptr(30),
	})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.SlotDurationMinutes)
	// Остальные поля не затронуты
	assert.Equal(t, 15, resp.BufferAfterMinutes)
	assert.Equal(t, "Europe/Berlin", resp.Timezone)
	assert.True(t, resp.Enabled)
}

func TestUpdate_ZeroAdvanceWindowIsAccepted(t *testing.T) {
	repo := &fakeSettingsRepo{stored: storedSettings(t)}
	svc := NewService(repo, nopLogger{})

	// maxAdvanceDays=0 ограничивает запись текущим днём и является валидным
	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:         7,
		CoachID:        7,
		MaxAdvanceDays: ptr.Ptr(0),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.MaxAdvanceDays)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, 0, repo.upserted.Policy.MaxAdvanceDays)
}

func TestUpdate_NoStoredSettingsStartsFromDefaults(t *testing.T) {
	repo := &fakeSettingsRepo{getErr: settingsRepo.ErrSettingsNotFound}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:  7,
		CoachID: 7,
		Week: &models.WeekDTO{
			Monday: models.DayDTO{
				Enabled: true,
				Slots:   []models.IntervalDTO{{Start: "09:00", End: "17:00"}},
			},
		},
	})
	require.NoError(t, err)

	// Новый тренер получает значения по умолчанию, запись выключена
	assert.False(t, resp.Enabled)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDurationMinutes)
	assert.Equal(t, domain.DefaultMinNoticeHours, resp.MinNoticeHours)
	assert.Equal(t, domain.DefaultTimezone, resp.Timezone)
	assert.True(t, resp.Week.Monday.Enabled)
	require.NotNil(t, repo.upserted)
}

func TestUpdate_InvalidPolicyIsRejected(t *testing.T) {
	repo := &fakeSettingsRepo{stored: storedSettings(t)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:              7,
		CoachID:             7,
		SlotDurationMinutes: ptr.Ptr(0),
	})
	assert.ErrorIs(t, err, ErrInvalidPolicy)
	assert.Nil(t, repo.upserted)
}

func TestUpdate_UnknownTimezoneIsRejected(t *testing.T) {
	repo := &fakeSettingsRepo{stored: storedSettings(t)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:   7,
		CoachID:  7,
		Timezone: ptr.Ptr("Mars/Olympus"),
	})
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestUpdate_MalformedIntervalIsRejected(t *testing.T) {
	repo := &fakeSettingsRepo{stored: storedSettings(t)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:  7,
		CoachID: 7,
		Week: &models.WeekDTO{
			Monday: models.DayDTO{
				Enabled: true,
				Slots:   []models.IntervalDTO{{Start: "9am", End: "5pm"}},
			},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_EmptyCalendarIDClearsIntegration(t *testing.T) {
	stored := storedSettings(t)
	stored.GoogleCalendarID = ptr.Ptr("coach@example.com")

	repo := &fakeSettingsRepo{stored: stored}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:           7,
		CoachID:          7,
		GoogleCalendarID: ptr.Ptr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.GoogleCalendarID)
}

func TestUpdate_OnlyOwnerHasAccess(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{stored: storedSettings(t)}, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:  8,
		CoachID: 7,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
