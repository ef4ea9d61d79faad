package get_booking_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/coachflow/CF-BookingService/internal/api/handlers"
	"github.com/coachflow/CF-BookingService/internal/api/middleware"
	settingsService "github.com/coachflow/CF-BookingService/internal/service/settings"
)

const (
	msgInvalidCoachID   = "некорректный ID тренера"
	msgUnauthorized     = "требуется аутентификация"
	msgSettingsNotFound = "настройки бронирования не найдены"
	msgAccessDenied     = "доступ запрещён"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/coaches/{coachId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /coaches/{id}/settings - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	coachID, err := strconv.ParseInt(vars["coachId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/settings - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	result, err := h.service.Get(r.Context(), coachID, userID)
	if err != nil {
		switch {
		case errors.Is(err, settingsService.ErrSettingsNotFound):
			h.logger.Warn("GET /coaches/{id}/settings - Settings not found: coach_id=%d", coachID)
			handlers.RespondNotFound(w, msgSettingsNotFound)

		case errors.Is(err, settingsService.ErrAccessDenied):
			h.logger.Warn("GET /coaches/{id}/settings - Access denied: coach_id=%d, user_id=%d", coachID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /coaches/{id}/settings - Failed to get settings: coach_id=%d, error=%v",
				coachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /coaches/{id}/settings - Settings retrieved successfully: coach_id=%d", coachID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
