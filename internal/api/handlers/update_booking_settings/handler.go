package update_booking_settings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/coachflow/CF-BookingService/internal/api/handlers"
	"github.com/coachflow/CF-BookingService/internal/api/middleware"
	settingsService "github.com/coachflow/CF-BookingService/internal/service/settings"
	"github.com/coachflow/CF-BookingService/internal/service/settings/models"
)

const (
	msgInvalidCoachID = "некорректный ID тренера"
	msgUnauthorized   = "требуется аутентификация"
	msgInvalidBody    = "некорректное тело запроса"
	msgInvalidPolicy  = "настройки не проходят валидацию"
	msgAccessDenied   = "доступ запрещён"
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

// Handle PUT /api/v1/coaches/{coachId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /coaches/{id}/settings - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	coachID, err := strconv.ParseInt(vars["coachId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /coaches/{id}/settings - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	var req models.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("PUT /coaches/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	req.UserID = userID
	req.CoachID = coachID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settingsService.ErrAccessDenied):
			h.logger.Warn("PUT /coaches/{id}/settings - Access denied: coach_id=%d, user_id=%d", coachID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, settingsService.ErrInvalidInput),
			errors.Is(err, settingsService.ErrInvalidPolicy):
			h.logger.Warn("PUT /coaches/{id}/settings - Invalid settings: coach_id=%d, error=%v", coachID, err)
			handlers.RespondBadRequest(w, msgInvalidPolicy)

		default:
			h.logger.Error("PUT /coaches/{id}/settings - Failed to update settings: coach_id=%d, error=%v",
				coachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /coaches/{id}/settings - Settings updated successfully: coach_id=%d", coachID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
