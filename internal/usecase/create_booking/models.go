package create_booking

import (
	"time"

	"github.com/coachflow/CF-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CoachID     int64            // ID тренера
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время начала, "10:00"
	ClientName  string           // Имя клиента
	ClientEmail string           // Email клиента
	Notes       *string          // Заметки клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	CoachID         int64            // ID тренера
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	ClientName      string           // Имя клиента
	ClientEmail     string           // Email клиента
	Notes           *string          // Заметки клиента
	CreatedAt       time.Time        // Время создания
	UpdatedAt       time.Time        // Время обновления
}
