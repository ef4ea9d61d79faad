package googlecalendar

import "errors"

var (
	// ErrCalendarUnavailable возвращается при ошибке или таймауте запроса к Google Calendar
	// Вызывающая сторона обязана деградировать к пустому списку занятых интервалов
	ErrCalendarUnavailable = errors.New("googlecalendar: calendar unavailable")

	// ErrInvalidPeriod возвращается, когда ответ содержит интервал с некорректными границами
	ErrInvalidPeriod = errors.New("googlecalendar: invalid busy period in response")
)
