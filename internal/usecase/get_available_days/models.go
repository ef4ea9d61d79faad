package get_available_days

import "time"

const (
	// DefaultScanDays сколько дней просматривается, если days не указан
	DefaultScanDays = 7

	// MaxScanDays максимальная ширина окна просмотра за один запрос
	MaxScanDays = 60
)

// Request модель запроса на получение дней с доступными слотами
type Request struct {
	CoachID int64     // ID тренера
	From    time.Time // Первый день окна просмотра (без времени)
	Days    int       // Ширина окна в днях; 0 означает DefaultScanDays
}

// Response модель ответа со списком дней, на которые есть хотя бы один слот
type Response struct {
	CoachID  int64    // ID тренера
	From     string   // Первый день окна просмотра, "2025-10-15"
	To       string   // Последний день окна просмотра
	Timezone string   // Часовой пояс тренера
	Days     []string // Даты с доступными слотами в порядке возрастания
}
