package bookings

import (
	"context"

	"github.com/coachflow/CF-BookingService/internal/domain"
	"github.com/coachflow/CF-BookingService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCoachWithFilter(ctx context.Context, filter domain.CoachBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, cancelledBy domain.CancelledBy, reason string) error
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	BookingCancelled(ctx context.Context, event *notifier.BookingCancelledEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
