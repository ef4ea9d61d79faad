package settings

import (
	"context"

	"github.com/coachflow/CF-BookingService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	GetByCoachID(ctx context.Context, coachID int64) (*domain.CoachSettings, error)
	Upsert(ctx context.Context, settings *domain.CoachSettings) (*domain.CoachSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
