package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coachflow/CF-BookingService/internal/domain"
	settingsRepo "github.com/coachflow/CF-BookingService/internal/infra/storage/settings"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	settingsRepo   SettingsRepository
	calendarClient CalendarClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	calendarClient CalendarClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		settingsRepo:   settingsRepo,
		calendarClient: calendarClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: coach=%d, date=%s", req.CoachID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки бронирования тренера
	// Отсутствие настроек и выключенная запись неразличимы для клиента
	settings, err := uc.settingsRepo.GetByCoachID(ctx, req.CoachID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Info("GetAvailableSlots: no settings for coach=%d, booking disabled", req.CoachID)
			return nil, ErrBookingDisabled
		}
		uc.logger.Error("GetAvailableSlots: failed to get settings for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	policy := &settings.Policy
	if !policy.Enabled {
		uc.logger.Info("GetAvailableSlots: booking disabled for coach=%d", req.CoachID)
		return nil, ErrBookingDisabled
	}

	// 4. Сохранённые настройки могли быть записаны до ужесточения валидации
	if err := policy.Validate(); err != nil {
		uc.logger.Error("GetAvailableSlots: invalid stored policy for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	loc, err := policy.Location()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: unknown timezone for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	// 5. Валидация даты с учетом окна бронирования
	if err := validateDate(req.Date, now, policy.MaxAdvanceDays, loc); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed for coach=%d: %v", req.CoachID, err)
		return nil, err
	}

	// 6. Генерируем кандидатов по недельному расписанию
	candidates, err := domain.GenerateSlots(req.Date, policy)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	if len(candidates) == 0 {
		uc.logger.Info("GetAvailableSlots: day %s is not scheduled for coach=%d",
			req.Date.Format(domain.DateFormat), req.CoachID)
		return &Response{
			CoachID:  req.CoachID,
			Date:     req.Date,
			Timezone: policy.Timezone,
			Slots:    []Slot{},
		}, nil
	}

	// 7. Получаем активные бронирования на эту дату
	filter := domain.CoachBookingsFilter{
		CoachID:         req.CoachID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByCoachWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Получаем занятость из внешнего календаря
	// Ошибки календаря не блокируют выдачу слотов (fail-open)
	busy := uc.fetchBusyIntervals(ctx, settings, req, loc)

	// 9. Строим индекс конфликтов и фильтруем кандидатов
	index, err := domain.BuildConflictIndex(bookings, busy, policy, loc)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build conflict index for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: failed to build conflict index: %v", ErrInternal, err)
	}

	slots, err := filterOfferable(candidates, req.Date, now, policy, loc, index)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to filter slots for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: failed to filter slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for coach=%d, date=%s",
		len(slots), len(candidates), req.CoachID, req.Date.Format(domain.DateFormat))

	return &Response{
		CoachID:  req.CoachID,
		Date:     req.Date,
		Timezone: policy.Timezone,
		Slots:    slots,
	}, nil
}

// fetchBusyIntervals запрашивает занятость из внешнего календаря тренера.
// При любой ошибке возвращает пустой список: внешний календарь не должен
// блокировать онлайн-запись
func (uc *UseCase) fetchBusyIntervals(ctx context.Context, settings *domain.CoachSettings, req *Request, loc *time.Location) []domain.BusyInterval {
	if settings.GoogleCalendarID == nil {
		return nil
	}

	from, to := dayRange(req.Date, loc)

	busy, err := uc.calendarClient.BusyIntervals(ctx, *settings.GoogleCalendarID, from, to)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: calendar unavailable for coach=%d, proceeding without it: %v",
			req.CoachID, err)
		return nil
	}

	return busy
}
