package create_booking

import "errors"

var (
	// ErrBookingDisabled возвращается, когда онлайн-запись у тренера выключена
	// или настройки бронирования отсутствуют
	ErrBookingDisabled = errors.New("booking is disabled for this coach")

	// ErrOutsideWindow возвращается, когда запрошенное время не попадает
	// в окно бронирования (minNoticeHours / maxAdvanceDays)
	ErrOutsideWindow = errors.New("requested time is outside the booking window")

	// ErrSlotUnavailable возвращается, когда запрошенный слот не существует
	// в расписании или уже занят
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidPolicy возвращается, когда сохранённые настройки не проходят валидацию
	ErrInvalidPolicy = errors.New("stored availability policy is invalid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
