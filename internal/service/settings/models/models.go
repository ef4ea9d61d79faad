package models

import (
	"time"

	"github.com/coachflow/CF-BookingService/internal/domain"
	"github.com/coachflow/CF-BookingService/pkg/types"
)

// IntervalDTO интервал доступности внутри дня
type IntervalDTO struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "17:00"
}

// DayDTO расписание одного дня недели
type DayDTO struct {
	Enabled bool          `json:"enabled"`
	Slots   []IntervalDTO `json:"slots"`
}

// WeekDTO недельное расписание доступности
type WeekDTO struct {
	Monday    DayDTO `json:"monday"`
	Tuesday   DayDTO `json:"tuesday"`
	Wednesday DayDTO `json:"wednesday"`
	Thursday  DayDTO `json:"thursday"`
	Friday    DayDTO `json:"friday"`
	Saturday  DayDTO `json:"saturday"`
	Sunday    DayDTO `json:"sunday"`
}

// Request модели

// UpdateSettingsRequest запрос на обновление настроек бронирования
// Незаполненные поля сохраняют текущие значения (или значения по умолчанию)
type UpdateSettingsRequest struct {
	UserID  int64 `json:"userId"`
	CoachID int64 `json:"coachId"`

	Enabled             *bool    `json:"enabled,omitempty"`
	SlotDurationMinutes *int     `json:"slotDurationMinutes,omitempty"`
	BufferBeforeMinutes *int     `json:"bufferBeforeMinutes,omitempty"`
	BufferAfterMinutes  *int     `json:"bufferAfterMinutes,omitempty"`
	MinNoticeHours      *int     `json:"minNoticeHours,omitempty"`
	MaxAdvanceDays      *int     `json:"maxAdvanceDays,omitempty"`
	Timezone            *string  `json:"timezone,omitempty"`
	Week                *WeekDTO `json:"week,omitempty"`
	GoogleCalendarID    *string  `json:"googleCalendarId,omitempty"`
}

// Response модели

// SettingsResponse ответ с настройками бронирования тренера
type SettingsResponse struct {
	CoachID int64 `json:"coachId"`
	Enabled bool  `json:"enabled"`

	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	BufferBeforeMinutes int    `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int    `json:"bufferAfterMinutes"`
	MinNoticeHours      int    `json:"minNoticeHours"`
	MaxAdvanceDays      int    `json:"maxAdvanceDays"`
	Timezone            string `json:"timezone"`

	Week WeekDTO `json:"week"`

	GoogleCalendarID *string `json:"googleCalendarId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

// ToDomainWeek конвертирует DTO недельного расписания в domain модель
func (w *WeekDTO) ToDomainWeek() (domain.WeeklySchedule, error) {
	week := domain.WeeklySchedule{}

	days := []struct {
		src DayDTO
		dst *domain.DaySchedule
	}{
		{w.Monday, &week.Monday},
		{w.Tuesday, &week.Tuesday},
		{w.Wednesday, &week.Wednesday},
		{w.Thursday, &week.Thursday},
		{w.Friday, &week.Friday},
		{w.Saturday, &week.Saturday},
		{w.Sunday, &week.Sunday},
	}

	for _, d := range days {
		day, err := toDomainDay(d.src)
		if err != nil {
			return week, err
		}
		*d.dst = day
	}

	return week, nil
}

func toDomainDay(day DayDTO) (domain.DaySchedule, error) {
	result := domain.DaySchedule{
		Enabled:   day.Enabled,
		Intervals: make([]domain.TimeInterval, 0, len(day.Slots)),
	}

	for _, slot := range day.Slots {
		start, err := types.NewTimeStringFromString(slot.Start)
		if err != nil {
			return result, err
		}
		end, err := types.NewTimeStringFromString(slot.End)
		if err != nil {
			return result, err
		}
		result.Intervals = append(result.Intervals, domain.TimeInterval{Start: start, End: end})
	}

	return result, nil
}

// FromDomainSettings конвертирует domain модель настроек в DTO
func FromDomainSettings(s *domain.CoachSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	return &SettingsResponse{
		CoachID:             s.Policy.CoachID,
		Enabled:             s.Policy.Enabled,
		SlotDurationMinutes: s.Policy.SlotDurationMinutes,
		BufferBeforeMinutes: s.Policy.BufferBeforeMinutes,
		BufferAfterMinutes:  s.Policy.BufferAfterMinutes,
		MinNoticeHours:      s.Policy.MinNoticeHours,
		MaxAdvanceDays:      s.Policy.MaxAdvanceDays,
		Timezone:            s.Policy.Timezone,
		Week:                fromDomainWeek(&s.Policy.Week),
		GoogleCalendarID:    s.GoogleCalendarID,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func fromDomainWeek(week *domain.WeeklySchedule) WeekDTO {
	return WeekDTO{
		Monday:    fromDomainDay(week.Monday),
		Tuesday:   fromDomainDay(week.Tuesday),
		Wednesday: fromDomainDay(week.Wednesday),
		Thursday:  fromDomainDay(week.Thursday),
		Friday:    fromDomainDay(week.Friday),
		Saturday:  fromDomainDay(week.Saturday),
		Sunday:    fromDomainDay(week.Sunday),
	}
}

func fromDomainDay(day domain.DaySchedule) DayDTO {
	dto := DayDTO{
		Enabled: day.Enabled,
		Slots:   make([]IntervalDTO, 0, len(day.Intervals)),
	}

	for _, interval := range day.Intervals {
		dto.Slots = append(dto.Slots, IntervalDTO{
			Start: interval.Start.String(),
			End:   interval.End.String(),
		})
	}

	return dto
}
