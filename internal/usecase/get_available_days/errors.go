package get_available_days

import "errors"

var (
	// ErrBookingDisabled возвращается, когда онлайн-запись у тренера выключена
	// или настройки бронирования отсутствуют
	ErrBookingDisabled = errors.New("booking is disabled for this coach")

	// ErrInvalidPolicy возвращается, когда сохранённые настройки не проходят валидацию
	ErrInvalidPolicy = errors.New("stored availability policy is invalid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
