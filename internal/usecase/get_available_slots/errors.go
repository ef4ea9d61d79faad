package get_available_slots

import "errors"

var (
	// ErrBookingDisabled возвращается, когда онлайн-запись у тренера выключена
	// или настройки бронирования отсутствуют
	ErrBookingDisabled = errors.New("booking is disabled for this coach")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение maxAdvanceDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidPolicy возвращается, когда сохранённые настройки не проходят валидацию
	ErrInvalidPolicy = errors.New("stored availability policy is invalid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
