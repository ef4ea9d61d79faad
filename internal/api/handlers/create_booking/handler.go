package create_booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coachflow/CF-BookingService/internal/api/handlers"
	createBooking "github.com/coachflow/CF-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidBody     = "некорректное тело запроса"
	msgInvalidDateTime = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgBookingDisabled = "онлайн-запись к тренеру недоступна"
	msgOutsideWindow   = "время вне окна бронирования"
	msgSlotUnavailable = "слот недоступен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrBookingDisabled):
			h.logger.Warn("POST /bookings - Booking disabled: coach_id=%d", req.CoachID)
			handlers.RespondNotFound(w, msgBookingDisabled)

		case errors.Is(err, createBooking.ErrOutsideWindow),
			errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Outside booking window: coach_id=%d, date=%s, time=%s",
				req.CoachID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWindow)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: coach_id=%d, date=%s, time=%s",
				req.CoachID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: coach_id=%d, error=%v",
				req.CoachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: id=%d, coach_id=%d, date=%s, time=%s",
		result.ID, result.CoachID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
