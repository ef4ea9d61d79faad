package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/coachflow/CF-BookingService/internal/domain"
	"github.com/coachflow/CF-BookingService/pkg/dbmetrics"
	"github.com/coachflow/CF-BookingService/pkg/psqlbuilder"
	"github.com/coachflow/CF-BookingService/pkg/types"
)

// DBExecutor алиас на интерфейс dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с настройками бронирования коуча
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var settingsColumns = []string{
	"id",
	"coach_id",
	"enabled",
	"slot_duration_minutes",
	"buffer_before_minutes",
	"buffer_after_minutes",
	"min_notice_hours",
	"max_advance_days",
	"timezone",
	"availability",
	"google_calendar_id",
	"created_at",
	"updated_at",
}

// GetByCoachID получает настройки коуча
// Недельное расписание хранится в JSONB-колонке availability
func (r *Repository) GetByCoachID(ctx context.Context, coachID int64) (*domain.CoachSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("booking_settings").
		Where(squirrel.Eq{"coach_id": coachID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCoachID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	result, err := scanSettings(row.Scan)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Upsert создает или полностью заменяет настройки коуча
func (r *Repository) Upsert(ctx context.Context, settings *domain.CoachSettings) (*domain.CoachSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	availability, err := marshalWeek(&settings.Policy.Week)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - marshal availability: %v", ErrMalformedAvailability, err)
	}

	query, args, err := psqlbuilder.Insert("booking_settings").
		Columns(
			"coach_id",
			"enabled",
			"slot_duration_minutes",
			"buffer_before_minutes",
			"buffer_after_minutes",
			"min_notice_hours",
			"max_advance_days",
			"timezone",
			"availability",
			"google_calendar_id",
		).
		Values(
			settings.Policy.CoachID,
			settings.Policy.Enabled,
			settings.Policy.SlotDurationMinutes,
			settings.Policy.BufferBeforeMinutes,
			settings.Policy.BufferAfterMinutes,
			settings.Policy.MinNoticeHours,
			settings.Policy.MaxAdvanceDays,
			settings.Policy.Timezone,
			availability,
			settings.GoogleCalendarID,
		).
		Suffix(`ON CONFLICT (coach_id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			buffer_before_minutes = EXCLUDED.buffer_before_minutes,
			buffer_after_minutes = EXCLUDED.buffer_after_minutes,
			min_notice_hours = EXCLUDED.min_notice_hours,
			max_advance_days = EXCLUDED.max_advance_days,
			timezone = EXCLUDED.timezone,
			availability = EXCLUDED.availability,
			google_calendar_id = EXCLUDED.google_calendar_id,
			updated_at = NOW()`).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}

// JSON-модель недельного расписания в колонке availability
// Формат: {"monday": {"enabled": true, "slots": [{"start": "09:00", "end": "17:00"}]}, ...}

type intervalJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type dayJSON struct {
	Enabled bool           `json:"enabled"`
	Slots   []intervalJSON `json:"slots"`
}

type weekJSON struct {
	Monday    dayJSON `json:"monday"`
	Tuesday   dayJSON `json:"tuesday"`
	Wednesday dayJSON `json:"wednesday"`
	Thursday  dayJSON `json:"thursday"`
	Friday    dayJSON `json:"friday"`
	Saturday  dayJSON `json:"saturday"`
	Sunday    dayJSON `json:"sunday"`
}

func marshalWeek(week *domain.WeeklySchedule) ([]byte, error) {
	return json.Marshal(weekJSON{
		Monday:    dayToJSON(week.Monday),
		Tuesday:   dayToJSON(week.Tuesday),
		Wednesday: dayToJSON(week.Wednesday),
		Thursday:  dayToJSON(week.Thursday),
		Friday:    dayToJSON(week.Friday),
		Saturday:  dayToJSON(week.Saturday),
		Sunday:    dayToJSON(week.Sunday),
	})
}

func unmarshalWeek(data []byte) (domain.WeeklySchedule, error) {
	var week weekJSON
	if err := json.Unmarshal(data, &week); err != nil {
		return domain.WeeklySchedule{}, err
	}
	return domain.WeeklySchedule{
		Monday:    dayFromJSON(week.Monday),
		Tuesday:   dayFromJSON(week.Tuesday),
		Wednesday: dayFromJSON(week.Wednesday),
		Thursday:  dayFromJSON(week.Thursday),
		Friday:    dayFromJSON(week.Friday),
		Saturday:  dayFromJSON(week.Saturday),
		Sunday:    dayFromJSON(week.Sunday),
	}, nil
}

func dayToJSON(day domain.DaySchedule) dayJSON {
	slots := make([]intervalJSON, len(day.Intervals))
	for i, interval := range day.Intervals {
		slots[i] = intervalJSON{Start: interval.Start.String(), End: interval.End.String()}
	}
	return dayJSON{Enabled: day.Enabled, Slots: slots}
}

func dayFromJSON(day dayJSON) domain.DaySchedule {
	intervals := make([]domain.TimeInterval, len(day.Slots))
	for i, slot := range day.Slots {
		intervals[i] = domain.TimeInterval{
			Start: types.TimeString(slot.Start),
			End:   types.TimeString(slot.End),
		}
	}
	return domain.DaySchedule{Enabled: day.Enabled, Intervals: intervals}
}

func scanSettings(scan func(dest ...interface{}) error) (*domain.CoachSettings, error) {
	var settings domain.CoachSettings
	var availability []byte
	var googleCalendarID sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&settings.ID,
		&settings.Policy.CoachID,
		&settings.Policy.Enabled,
		&settings.Policy.SlotDurationMinutes,
		&settings.Policy.BufferBeforeMinutes,
		&settings.Policy.BufferAfterMinutes,
		&settings.Policy.MinNoticeHours,
		&settings.Policy.MaxAdvanceDays,
		&settings.Policy.Timezone,
		&availability,
		&googleCalendarID,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanSettings: %v", ErrScanRow, err)
	}

	week, err := unmarshalWeek(availability)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAvailability, err)
	}
	settings.Policy.Week = week

	if googleCalendarID.Valid {
		settings.GoogleCalendarID = &googleCalendarID.String
	}
	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}
