package settings

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда настройки тренера не найдены
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrAccessDenied возвращается, когда у вызывающего нет прав на настройки
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidPolicy возвращается, когда настройки не проходят доменную валидацию
	ErrInvalidPolicy = errors.New("invalid availability policy")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
