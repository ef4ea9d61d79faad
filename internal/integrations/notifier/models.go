package notifier

// BookingCreatedEvent событие о созданном бронировании для сервиса уведомлений
type BookingCreatedEvent struct {
	BookingID       int64  `json:"bookingId"`
	CoachID         int64  `json:"coachId"`
	BookingDate     string `json:"bookingDate"` // YYYY-MM-DD
	StartTime       string `json:"startTime"`   // HH:MM
	DurationMinutes int    `json:"durationMinutes"`
	ClientName      string `json:"clientName"`
	ClientEmail     string `json:"clientEmail"`
}

// BookingCancelledEvent событие об отменённом бронировании
type BookingCancelledEvent struct {
	BookingID   int64  `json:"bookingId"`
	CoachID     int64  `json:"coachId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	ClientEmail string `json:"clientEmail"`
	CancelledBy string `json:"cancelledBy"`
	Reason      string `json:"reason,omitempty"`
}
