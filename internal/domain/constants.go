package domain

// Default policy values applied when a coach has not configured a field
const (
	DefaultSlotDurationMinutes = 60
	DefaultBufferMinutes       = 0
	DefaultMinNoticeHours      = 24
	DefaultMaxAdvanceDays      = 30
	DefaultTimezone            = "UTC"
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MaxBufferMinutes       = 240 // 4 hours
	MinNoticeHoursLimit    = 720 // 30 days
	MaxAdvanceDaysLimit    = 365 // 1 year

	MaxClientNameLength         = 200
	MaxClientEmailLength        = 320
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, которые не занимают слот
// Используется при фильтрации бронирований для подсчёта конфликтов
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// ActiveStatuses список статусов, которые занимают слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
