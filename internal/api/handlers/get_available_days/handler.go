package get_available_days

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/coachflow/CF-BookingService/internal/api/handlers"
	"github.com/coachflow/CF-BookingService/internal/domain"
	getAvailableDays "github.com/coachflow/CF-BookingService/internal/usecase/get_available_days"
)

const (
	msgInvalidCoachID  = "некорректный ID тренера"
	msgMissingFrom     = "параметр from обязателен"
	msgInvalidFrom     = "некорректный формат даты from, ожидается YYYY-MM-DD"
	msgInvalidDays     = "некорректное значение days"
	msgBookingDisabled = "онлайн-запись к тренеру недоступна"
)

type Handler struct {
	useCase GetAvailableDaysUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDaysUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// AvailableDaysResponse HTTP response model
type AvailableDaysResponse struct {
	CoachID  int64    `json:"coachId"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Timezone string   `json:"timezone"`
	Days     []string `json:"days"`
}

// Handle GET /api/v1/coaches/{coachId}/available-days
// Query params: from (required, YYYY-MM-DD), days (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	coachIDStr := vars["coachId"]
	coachID, err := strconv.ParseInt(coachIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/available-days - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /coaches/{id}/available-days - Missing from")
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/available-days - Invalid from format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}

	days := 0
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err = strconv.Atoi(daysStr)
		if err != nil {
			h.logger.Warn("GET /coaches/{id}/available-days - Invalid days: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
	}

	useCaseReq := &getAvailableDays.Request{
		CoachID: coachID,
		From:    from,
		Days:    days,
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDays.ErrBookingDisabled):
			h.logger.Warn("GET /coaches/{id}/available-days - Booking disabled: coach_id=%d", coachID)
			handlers.RespondNotFound(w, msgBookingDisabled)

		case errors.Is(err, getAvailableDays.ErrInvalidInput):
			h.logger.Warn("GET /coaches/{id}/available-days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /coaches/{id}/available-days - Failed to get days: coach_id=%d, error=%v",
				coachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := &AvailableDaysResponse{
		CoachID:  result.CoachID,
		From:     result.From,
		To:       result.To,
		Timezone: result.Timezone,
		Days:     result.Days,
	}

	h.logger.Info("GET /coaches/{id}/available-days - Days retrieved successfully: coach_id=%d, days_count=%d",
		coachID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}
