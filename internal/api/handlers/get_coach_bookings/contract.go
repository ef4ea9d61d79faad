package get_coach_bookings

import (
	"context"

	"github.com/coachflow/CF-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetCoachBookings(ctx context.Context, req *models.GetCoachBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
