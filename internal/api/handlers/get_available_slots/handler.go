package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/coachflow/CF-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/coachflow/CF-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCoachID    = "некорректный ID тренера"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBookingDisabled   = "онлайн-запись к тренеру недоступна"
	msgDateOutsideWindow = "дата вне окна бронирования"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/coaches/{coachId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем coachId из URL
	coachIDStr := vars["coachId"]
	coachID, err := strconv.ParseInt(coachIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/available-slots - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /coaches/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(coachID, dateStr)
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBookingDisabled):
			h.logger.Warn("GET /coaches/{id}/available-slots - Booking disabled: coach_id=%d", coachID)
			handlers.RespondNotFound(w, msgBookingDisabled)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate),
			errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /coaches/{id}/available-slots - Date outside window: coach_id=%d, date=%s",
				coachID, dateStr)
			handlers.RespondBadRequest(w, msgDateOutsideWindow)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /coaches/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /coaches/{id}/available-slots - Failed to get slots: coach_id=%d, date=%s, error=%v",
				coachID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /coaches/{id}/available-slots - Slots retrieved successfully: coach_id=%d, date=%s, slots_count=%d",
		coachID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
