package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coachflow/CF-BookingService/internal/domain"
	bookingRepo "github.com/coachflow/CF-BookingService/internal/infra/storage/booking"
	"github.com/coachflow/CF-BookingService/internal/integrations/notifier"
	"github.com/coachflow/CF-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	notifier    NotifierClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifier NotifierClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Доступно тренеру бронирования без дополнительных проверок
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Бронирование видит только его тренер
	if booking.CoachID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetCoachBookings получает бронирования тренера с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых бронирований
// Доступно только самому тренеру
func (s *Service) GetCoachBookings(ctx context.Context, req *models.GetCoachBookingsRequest) (*models.BookingListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetCoachBookings: fetching bookings for coach=%d, user=%d", req.CoachID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Календарь тренера видит только сам тренер
	if req.UserID != req.CoachID {
		s.logger.Warn("GetCoachBookings: access denied for user=%d to coach=%d", req.UserID, req.CoachID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCoachBookings: invalid filter for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCoachWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCoachBookings: repository error for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: GetCoachBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCoachBookings: successfully fetched %d bookings for coach=%d", len(bookings), req.CoachID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Тренер отменяет свои бронирования (cancelled_by=coach),
// клиент — по совпадению email из бронирования (cancelled_by=client)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Определяем, от чьего имени выполняется отмена
	cancelledBy, err := s.resolveCancelActor(booking, req)
	if err != nil {
		s.logger.Warn("Cancel: access denied to cancel booking id=%d", bookingID)
		return err
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelledBy, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrCannotCancel) {
			s.logger.Warn("Cancel: booking id=%d already inactive", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Уведомление отправляем best-effort: отмена уже зафиксирована в БД
	event := &notifier.BookingCancelledEvent{
		BookingID:   booking.ID,
		CoachID:     booking.CoachID,
		BookingDate: booking.BookingDate.Format(domain.DateFormat),
		StartTime:   booking.StartTime.String(),
		ClientEmail: booking.ClientEmail,
		CancelledBy: string(cancelledBy),
		Reason:      req.CancellationReason,
	}
	if err := s.notifier.BookingCancelled(ctx, event); err != nil {
		s.logger.Warn("Cancel: failed to notify about booking id=%d cancellation: %v", bookingID, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d by %s", bookingID, cancelledBy)
	return nil
}

// Confirm переводит бронирование из pending в confirmed
// Доступно только тренеру бронирования
func (s *Service) Confirm(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d by user=%d", bookingID, userID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Confirm: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Confirm: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	if booking.CoachID != userID {
		s.logger.Warn("Confirm: access denied for user=%d to booking id=%d", userID, bookingID)
		return nil, ErrAccessDenied
	}

	if booking.Status != domain.StatusPending {
		s.logger.Warn("Confirm: booking id=%d is not pending, status=%s", bookingID, booking.Status)
		return nil, ErrNotPending
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusConfirmed); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Confirm: booking id=%d not found during update", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Confirm: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusConfirmed

	s.logger.Info("Confirm: successfully confirmed booking id=%d", bookingID)
	return models.FromDomainBooking(booking), nil
}

// Вспомогательные методы

// resolveCancelActor определяет инициатора отмены по данным запроса
func (s *Service) resolveCancelActor(booking *domain.Booking, req *models.CancelBookingRequest) (domain.CancelledBy, error) {
	if req.UserID != nil {
		if *req.UserID != booking.CoachID {
			return "", ErrAccessDenied
		}
		return domain.CancelledByCoach, nil
	}

	if req.ClientEmail != nil {
		if !strings.EqualFold(strings.TrimSpace(*req.ClientEmail), booking.ClientEmail) {
			return "", ErrAccessDenied
		}
		return domain.CancelledByClient, nil
	}

	return "", ErrAccessDenied
}
