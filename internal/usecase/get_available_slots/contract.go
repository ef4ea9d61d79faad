package get_available_slots

import (
	"context"
	"time"

	"github.com/coachflow/CF-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByCoachWithFilter получает бронирования тренера по фильтру
	GetByCoachWithFilter(ctx context.Context, filter domain.CoachBookingsFilter) ([]*domain.Booking, error)
}

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	GetByCoachID(ctx context.Context, coachID int64) (*domain.CoachSettings, error)
}

// CalendarClient интерфейс клиента внешнего календаря
type CalendarClient interface {
	BusyIntervals(ctx context.Context, calendarID string, from, to time.Time) ([]domain.BusyInterval, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
