package googlecalendar

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/coachflow/CF-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент внешнего календаря поверх Google Calendar FreeBusy API
// Авторизация через сервисный аккаунт: коуч выдаёт сервисному аккаунту
// доступ на чтение к своему календарю
type Client struct {
	svc     *calendar.Service
	timeout time.Duration
	log     Logger
}

// NewClient создает новый клиент Google Calendar
func NewClient(ctx context.Context, credentialsFile string, timeout time.Duration, log Logger) (*Client, error) {
	svc, err := calendar.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(calendar.CalendarReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: create service: %v", ErrCalendarUnavailable, err)
	}

	return &Client{
		svc:     svc,
		timeout: timeout,
		log:     log,
	}, nil
}

// BusyIntervals возвращает занятые интервалы календаря за период [from, to)
// Запрос ограничен таймаутом клиента; по его истечении возвращается
// ErrCalendarUnavailable, и вызывающая сторона продолжает без внешних конфликтов
func (c *Client) BusyIntervals(ctx context.Context, calendarID string, from, to time.Time) ([]domain.BusyInterval, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: calendarID}},
	}).Context(reqCtx).Do()

	if err != nil {
		return nil, fmt.Errorf("%w: freebusy query for %s: %v", ErrCalendarUnavailable, calendarID, err)
	}

	cal, ok := resp.Calendars[calendarID]
	if !ok {
		return nil, fmt.Errorf("%w: calendar %s missing in freebusy response", ErrCalendarUnavailable, calendarID)
	}

	intervals := make([]domain.BusyInterval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: start %q: %v", ErrInvalidPeriod, period.Start, err)
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, fmt.Errorf("%w: end %q: %v", ErrInvalidPeriod, period.End, err)
		}
		intervals = append(intervals, domain.BusyInterval{Start: start, End: end})
	}

	c.log.Info("googlecalendar: fetched %d busy intervals for %s [%s, %s)",
		len(intervals), calendarID, from.Format(time.RFC3339), to.Format(time.RFC3339))

	return intervals, nil
}

// Disabled заглушка для выключенной интеграции: внешних конфликтов нет
type Disabled struct{}

// BusyIntervals всегда возвращает пустой список
func (Disabled) BusyIntervals(_ context.Context, _ string, _, _ time.Time) ([]domain.BusyInterval, error) {
	return []domain.BusyInterval{}, nil
}
