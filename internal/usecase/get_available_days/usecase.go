package get_available_days

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coachflow/CF-BookingService/internal/domain"
	settingsRepo "github.com/coachflow/CF-BookingService/internal/infra/storage/settings"
)

// UseCase use case для получения дней с доступными слотами
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

// Execute выполняет use case получения дней с доступными слотами.
// Окно просмотра обрезается текущим днём снизу и maxAdvanceDays сверху,
// бронирования и внешняя занятость запрашиваются одним запросом на весь период
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDays: coach=%d, from=%s, days=%d",
		req.CoachID, req.From.Format(domain.DateFormat), req.Days)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDays: validation failed: %v", err)
		return nil, err
	}

	days := req.Days
	if days == 0 {
		days = DefaultScanDays
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки бронирования тренера
	settings, err := uc.settingsRepo.GetByCoachID(ctx, req.CoachID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Info("GetAvailableDays: no settings for coach=%d, booking disabled", req.CoachID)
			return nil, ErrBookingDisabled
		}
		uc.logger.Error("GetAvailableDays: failed to get settings for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	policy := &settings.Policy
	if !policy.Enabled {
		uc.logger.Info("GetAvailableDays: booking disabled for coach=%d", req.CoachID)
		return nil, ErrBookingDisabled
	}

	if err := policy.Validate(); err != nil {
		uc.logger.Error("GetAvailableDays: invalid stored policy for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	loc, err := policy.Location()
	if err != nil {
		uc.logger.Error("GetAvailableDays: unknown timezone for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	// 4. Обрезаем окно просмотра окном бронирования
	nowLocal := now.In(loc)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)

	first := time.Date(req.From.Year(), req.From.Month(), req.From.Day(), 0, 0, 0, 0, loc)
	last := first.AddDate(0, 0, days-1)

	if first.Before(today) {
		first = today
	}
	if maxDate := today.AddDate(0, 0, policy.MaxAdvanceDays); last.After(maxDate) {
		last = maxDate
	}

	resp := &Response{
		CoachID:  req.CoachID,
		From:     first.Format(domain.DateFormat),
		To:       last.Format(domain.DateFormat),
		Timezone: policy.Timezone,
		Days:     []string{},
	}

	if last.Before(first) {
		uc.logger.Info("GetAvailableDays: empty scan window for coach=%d", req.CoachID)
		return resp, nil
	}

	// 5. Получаем активные бронирования на весь период одним запросом
	filter := domain.CoachBookingsFilter{
		CoachID:         req.CoachID,
		StartDate:       &first,
		EndDate:         &last,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByCoachWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableDays: failed to get bookings for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Получаем занятость из внешнего календаря на весь период (fail-open)
	busy := uc.fetchBusyIntervals(ctx, settings, first, last.AddDate(0, 0, 1))

	// 7. Строим общий индекс конфликтов и проверяем каждый день
	index, err := domain.BuildConflictIndex(bookings, busy, policy, loc)
	if err != nil {
		uc.logger.Error("GetAvailableDays: failed to build conflict index for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: failed to build conflict index: %v", ErrInternal, err)
	}

	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		offerable, err := uc.hasOfferableSlot(date, now, policy, loc, index)
		if err != nil {
			uc.logger.Error("GetAvailableDays: failed to check date %s for coach=%d: %v",
				date.Format(domain.DateFormat), req.CoachID, err)
			return nil, fmt.Errorf("%w: failed to check date: %v", ErrInternal, err)
		}
		if offerable {
			resp.Days = append(resp.Days, date.Format(domain.DateFormat))
		}
	}

	uc.logger.Info("GetAvailableDays: %d available days for coach=%d in window %s..%s",
		len(resp.Days), req.CoachID, resp.From, resp.To)

	return resp, nil
}

// hasOfferableSlot проверяет, остаётся ли на дату хотя бы один доступный слот.
// Останавливается на первом подходящем кандидате
func (uc *UseCase) hasOfferableSlot(
	date time.Time,
	now time.Time,
	p *domain.AvailabilityPolicy,
	loc *time.Location,
	index *domain.ConflictIndex,
) (bool, error) {
	candidates, err := domain.GenerateSlots(date, p)
	if err != nil {
		return false, err
	}

	duration := time.Duration(p.SlotDurationMinutes) * time.Minute

	for _, candidate := range candidates {
		start, err := candidate.At(date, loc)
		if err != nil {
			return false, err
		}

		if !domain.WithinBookingWindow(start, now, p, loc) {
			continue
		}

		if !index.Overlaps(start, start.Add(duration)) {
			return true, nil
		}
	}

	return false, nil
}

// fetchBusyIntervals запрашивает занятость из внешнего календаря тренера.
// При любой ошибке возвращает пустой список
func (uc *UseCase) fetchBusyIntervals(ctx context.Context, settings *domain.CoachSettings, from, to time.Time) []domain.BusyInterval {
	if settings.GoogleCalendarID == nil {
		return nil
	}

	busy, err := uc.calendarClient.BusyIntervals(ctx, *settings.GoogleCalendarID, from, to)
	if err != nil {
		uc.logger.Warn("GetAvailableDays: calendar unavailable for coach=%d, proceeding without it: %v",
			settings.Policy.CoachID, err)
		return nil
	}

	return busy
}
