package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachflow/CF-BookingService/internal/domain"
	bookingRepo "github.com/coachflow/CF-BookingService/internal/infra/storage/booking"
	"github.com/coachflow/CF-BookingService/internal/integrations/notifier"
	"github.com/coachflow/CF-BookingService/internal/service/bookings/models"
	"github.com/coachflow/CF-BookingService/pkg/ptr"
	"github.com/coachflow/CF-BookingService/pkg/types"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	booking *domain.Booking
	list    []*domain.Booking
	getErr  error

	cancelErr   error
	cancelledBy domain.CancelledBy
	reason      string

	updatedStatus *domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByCoachWithFilter(_ context.Context, _ domain.CoachBookingsFilter) ([]*domain.Booking, error) {
	return f.list, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, cancelledBy domain.CancelledBy, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelledBy = cancelledBy
	f.reason = reason
	return nil
}

type fakeNotifier struct {
	events []*notifier.BookingCancelledEvent
	err    error
}

func (f *fakeNotifier) BookingCancelled(_ context.Context, event *notifier.BookingCancelledEvent) error {
	f.events = append(f.events, event)
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func pendingBooking(t *testing.T) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		ID:              42,
		CoachID:         7,
		BookingDate:     time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		StartTime:       ts(t, "10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusPending,
		ClientName:      "Анна Петрова",
		ClientEmail:     "anna@example.com",
	}
}

func newTestService(repo *fakeBookingRepo) (*Service, *fakeNotifier) {
	notifierClient := &fakeNotifier{}
	return NewService(repo, notifierClient, nopLogger{}), notifierClient
}

// GetByID

func TestGetByID_CoachSeesOwnBooking(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking(t)}
	svc, _ := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)
}

func TestGetByID_OtherUserIsDenied(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking(t)}
	svc, _ := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 42, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	svc, _ := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 42, 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// GetCoachBookings

func TestGetCoachBookings_OnlyOwnerHasAccess(t *testing.T) {
	repo := &fakeBookingRepo{list: []*domain.Booking{pendingBooking(t)}}
	svc, _ := newTestService(repo)

	resp, err := svc.GetCoachBookings(context.Background(), &models.GetCoachBookingsRequest{
		UserID:  7,
		CoachID: 7,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)

	_, err = svc.GetCoachBookings(context.Background(), &models.GetCoachBookingsRequest{
		UserID:  8,
		CoachID: 7,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetCoachBookings_InvalidStatusFilter(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc, _ := newTestService(repo)

	_, err := svc.GetCoachBookings(context.Background(), &models.GetCoachBookingsRequest{
		UserID:  7,
		CoachID: 7,
		Status:  ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Cancel

func TestCancel_ByCoach(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking(t)}
	svc, notifierClient := newTestService(repo)

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		UserID:             ptr.Ptr(int64(7)),
		CancellationReason: "болезнь",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CancelledByCoach, repo.cancelledBy)
	assert.Equal(t, "болезнь", repo.reason)

	require.Len(t, notifierClient.events, 1)
	assert.Equal(t, "coach", notifierClient.events[0].CancelledBy)
}

func TestCancel_ByClientEmailMatch(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking(t)}
	svc, notifierClient := newTestService(repo)

	// Сравнение email без учёта регистра и внешних пробелов
	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		ClientEmail: ptr.Ptr("  ANNA@example.com "),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CancelledByClient, repo.cancelledBy)
	require.Len(t, notifierClient.events, 1)
	assert.Equal(t, "client", notifierClient.events[0].CancelledBy)
}

func TestCancel_WrongCoachIsDenied(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking(t)}
	svc, _ := newTestService(repo)

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		UserID: ptr.Ptr(int64(99)),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_WrongEmailIsDenied(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking(t)}
	svc, _ := newTestService(repo)

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		ClientEmail: ptr.Ptr("other@example.com"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_NoIdentityIsDenied(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking(t)}
	svc, _ := newTestService(repo)

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	booking := pendingBooking(t)
	booking.Status = domain.StatusCancelled

	repo := &fakeBookingRepo{booking: booking}
	svc, _ := newTestService(repo)

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		UserID: ptr.Ptr(int64(7)),
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_NotifierFailureDoesNotFailCancel(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking(t)}
	svc, notifierClient := newTestService(repo)
	notifierClient.err = errors.New("notifier down")

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		UserID: ptr.Ptr(int64(7)),
	})
	assert.NoError(t, err)
}

// Confirm

func TestConfirm_PendingBecomesConfirmed(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking(t)}
	svc, _ := newTestService(repo)

	resp, err := svc.Confirm(context.Background(), 42, 7)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.updatedStatus)
}

func TestConfirm_OtherUserIsDenied(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking(t)}
	svc, _ := newTestService(repo)

	_, err := svc.Confirm(context.Background(), 42, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestConfirm_NotPending(t *testing.T) {
	booking := pendingBooking(t)
	booking.Status = domain.StatusConfirmed

	repo := &fakeBookingRepo{booking: booking}
	svc, _ := newTestService(repo)

	_, err := svc.Confirm(context.Background(), 42, 7)
	assert.ErrorIs(t, err, ErrNotPending)
}
