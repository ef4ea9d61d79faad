package get_available_slots

import (
	"time"

	"github.com/coachflow/CF-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	CoachID int64     // ID тренера
	Date    time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	CoachID  int64     // ID тренера
	Date     time.Time // Дата, на которую запрашивались слоты
	Timezone string    // Часовой пояс тренера
	Slots    []Slot    // Список доступных слотов в порядке возрастания времени
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
}
