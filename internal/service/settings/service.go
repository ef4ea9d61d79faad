package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coachflow/CF-BookingService/internal/domain"
	settingsRepo "github.com/coachflow/CF-BookingService/internal/infra/storage/settings"
	"github.com/coachflow/CF-BookingService/internal/service/settings/models"
)

// Service сервис для работы с настройками бронирования тренера
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get получает настройки бронирования тренера
// Доступно только самому тренеру
func (s *Service) Get(ctx context.Context, coachID int64, userID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for coach=%d, user=%d", coachID, userID)

	if userID != coachID {
		s.logger.Warn("Get: access denied for user=%d to coach=%d settings", userID, coachID)
		return nil, ErrAccessDenied
	}

	stored, err := s.settingsRepo.GetByCoachID(ctx, coachID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Get: settings for coach=%d not found", coachID)
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("Get: repository error for coach=%d: %v", coachID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched settings for coach=%d", coachID)
	return models.FromDomainSettings(stored), nil
}

// Update обновляет настройки бронирования тренера
// Незаполненные поля запроса сохраняют текущие значения; если настроек ещё нет,
// базой служат значения по умолчанию. Результат проходит доменную валидацию
// до записи в БД
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for coach=%d, user=%d", req.CoachID, req.UserID)

	if req.UserID != req.CoachID {
		s.logger.Warn("Update: access denied for user=%d to coach=%d settings", req.UserID, req.CoachID)
		return nil, ErrAccessDenied
	}

	// Базой для обновления служат текущие настройки или значения по умолчанию
	current, err := s.settingsRepo.GetByCoachID(ctx, req.CoachID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Update: repository error for coach=%d: %v", req.CoachID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		current = defaultSettings(req.CoachID)
	}

	if err := applyRequest(current, req); err != nil {
		s.logger.Warn("Update: invalid settings payload for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := current.Policy.Validate(); err != nil {
		s.logger.Warn("Update: policy validation failed for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	stored, err := s.settingsRepo.Upsert(ctx, current)
	if err != nil {
		s.logger.Error("Update: repository error for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated settings for coach=%d", req.CoachID)
	return models.FromDomainSettings(stored), nil
}

// Вспомогательные методы

// defaultSettings возвращает настройки по умолчанию для нового тренера
func defaultSettings(coachID int64) *domain.CoachSettings {
	return &domain.CoachSettings{
		Policy: domain.AvailabilityPolicy{
			CoachID:             coachID,
			Enabled:             false,
			SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
			BufferBeforeMinutes: domain.DefaultBufferMinutes,
			BufferAfterMinutes:  domain.DefaultBufferMinutes,
			MinNoticeHours:      domain.DefaultMinNoticeHours,
			MaxAdvanceDays:      domain.DefaultMaxAdvanceDays,
			Timezone:            domain.DefaultTimezone,
		},
	}
}

// applyRequest накладывает заполненные поля запроса на текущие настройки
func applyRequest(settings *domain.CoachSettings, req *models.UpdateSettingsRequest) error {
	if req.Enabled != nil {
		settings.Policy.Enabled = *req.Enabled
	}
	if req.SlotDurationMinutes != nil {
		settings.Policy.SlotDurationMinutes = *req.SlotDurationMinutes
	}
	if req.BufferBeforeMinutes != nil {
		settings.Policy.BufferBeforeMinutes = *req.BufferBeforeMinutes
	}
	if req.BufferAfterMinutes != nil {
		settings.Policy.BufferAfterMinutes = *req.BufferAfterMinutes
	}
	if req.MinNoticeHours != nil {
		settings.Policy.MinNoticeHours = *req.MinNoticeHours
	}
	if req.MaxAdvanceDays != nil {
		settings.Policy.MaxAdvanceDays = *req.MaxAdvanceDays
	}
	if req.Timezone != nil {
		settings.Policy.Timezone = strings.TrimSpace(*req.Timezone)
	}
	if req.Week != nil {
		week, err := req.Week.ToDomainWeek()
		if err != nil {
			return err
		}
		settings.Policy.Week = week
	}
	if req.GoogleCalendarID != nil {
		// Пустая строка отключает интеграцию с календарём
		if strings.TrimSpace(*req.GoogleCalendarID) == "" {
			settings.GoogleCalendarID = nil
		} else {
			settings.GoogleCalendarID = req.GoogleCalendarID
		}
	}

	return nil
}
