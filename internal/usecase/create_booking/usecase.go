package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coachflow/CF-BookingService/internal/domain"
	bookingRepo "github.com/coachflow/CF-BookingService/internal/infra/storage/booking"
	settingsRepo "github.com/coachflow/CF-BookingService/internal/infra/storage/settings"
	"github.com/coachflow/CF-BookingService/internal/integrations/notifier"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	settingsRepo   SettingsRepository
	calendarClient CalendarClient
	notifier       NotifierClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	calendarClient CalendarClient,
	notifierClient NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		settingsRepo:   settingsRepo,
		calendarClient: calendarClient,
		notifier:       notifierClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// при двух одновременных запросах на один слот бронирование получает ровно один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: coach=%d, date=%s, time=%s",
		req.CoachID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки бронирования тренера
	settings, err := uc.settingsRepo.GetByCoachID(ctx, req.CoachID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Warn("CreateBooking: no settings for coach=%d, booking disabled", req.CoachID)
			return nil, ErrBookingDisabled
		}
		uc.logger.Error("CreateBooking: failed to get settings for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	policy := &settings.Policy
	if !policy.Enabled {
		uc.logger.Warn("CreateBooking: booking disabled for coach=%d", req.CoachID)
		return nil, ErrBookingDisabled
	}

	if err := policy.Validate(); err != nil {
		uc.logger.Error("CreateBooking: invalid stored policy for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	loc, err := policy.Location()
	if err != nil {
		uc.logger.Error("CreateBooking: unknown timezone for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	// 4. Валидация даты
	if err := validateDate(req.Date, now, loc); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed for coach=%d: %v", req.CoachID, err)
		return nil, err
	}

	// 5. Проверяем окно бронирования для запрошенного времени
	start, err := req.StartTime.At(req.Date, loc)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid start time for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	end := start.Add(time.Duration(policy.SlotDurationMinutes) * time.Minute)

	if !domain.WithinBookingWindow(start, now, policy, loc) {
		uc.logger.Warn("CreateBooking: time %s is outside the booking window for coach=%d",
			req.StartTime, req.CoachID)
		return nil, ErrOutsideWindow
	}

	// 6. Запрошенное время должно совпадать с одним из слотов расписания
	if err := uc.validateSlotExists(req, policy); err != nil {
		return nil, err
	}

	// 7. Получаем занятость из внешнего календаря до открытия транзакции,
	// чтобы не держать её открытой на время сетевого вызова (fail-open)
	busy := uc.fetchBusyIntervals(ctx, settings, req, loc)

	var result *domain.Booking

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Получаем активные бронирования на эту дату с блокировкой (FOR UPDATE)
		filter := domain.CoachBookingsFilter{
			CoachID:         req.CoachID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByCoachWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 8.2. Проверяем конфликты с бронированиями и внешней занятостью
		index, err := domain.BuildConflictIndex(bookings, busy, policy, loc)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to build conflict index: %v", err)
			return fmt.Errorf("%w: failed to build conflict index: %v", ErrInternal, err)
		}

		if index.Overlaps(start, end) {
			uc.logger.Warn("CreateBooking: slot %s is already occupied for coach=%d", req.StartTime, req.CoachID)
			return ErrSlotUnavailable
		}

		// 8.3. Создаем бронирование
		booking := &domain.Booking{
			CoachID:         req.CoachID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: policy.SlotDurationMinutes,
			Status:          domain.StatusPending,
			ClientName:      req.ClientName,
			ClientEmail:     req.ClientEmail,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Частичный уникальный индекс добивает гонку, которую не поймал индекс конфликтов
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s was taken concurrently for coach=%d",
					req.StartTime, req.CoachID)
				return ErrSlotUnavailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d for coach=%d", result.ID, req.CoachID)

	// 9. Уведомление отправляем после коммита, best-effort
	event := &notifier.BookingCreatedEvent{
		BookingID:       result.ID,
		CoachID:         result.CoachID,
		BookingDate:     result.BookingDate.Format(domain.DateFormat),
		StartTime:       result.StartTime.String(),
		DurationMinutes: result.DurationMinutes,
		ClientName:      result.ClientName,
		ClientEmail:     result.ClientEmail,
	}
	if err := uc.notifier.BookingCreated(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to notify about booking id=%d: %v", result.ID, err)
	}

	endTime, err := result.EndTime()
	if err != nil {
		uc.logger.Error("CreateBooking: failed to compute end time for booking id=%d: %v", result.ID, err)
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	return &Response{
		ID:              result.ID,
		CoachID:         result.CoachID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         endTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ClientName:      result.ClientName,
		ClientEmail:     result.ClientEmail,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// validateSlotExists проверяет, что запрошенное время входит в расписание тренера.
// Выключенный день недели кандидатов не даёт, поэтому отдельная проверка не нужна
func (uc *UseCase) validateSlotExists(req *Request, policy *domain.AvailabilityPolicy) error {
	candidates, err := domain.GenerateSlots(req.Date, policy)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to generate slots for coach=%d: %v", req.CoachID, err)
		return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	for _, candidate := range candidates {
		if candidate == req.StartTime {
			return nil
		}
	}

	uc.logger.Warn("CreateBooking: time %s is not a schedule slot for coach=%d on %s",
		req.StartTime, req.CoachID, req.Date.Format(domain.DateFormat))
	return ErrSlotUnavailable
}

// fetchBusyIntervals запрашивает занятость из внешнего календаря тренера.
// При любой ошибке возвращает пустой список
func (uc *UseCase) fetchBusyIntervals(ctx context.Context, settings *domain.CoachSettings, req *Request, loc *time.Location) []domain.BusyInterval {
	if settings.GoogleCalendarID == nil {
		return nil
	}

	from := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1)

	busy, err := uc.calendarClient.BusyIntervals(ctx, *settings.GoogleCalendarID, from, to)
	if err != nil {
		uc.logger.Warn("CreateBooking: calendar unavailable for coach=%d, proceeding without it: %v",
			req.CoachID, err)
		return nil
	}

	return busy
}
