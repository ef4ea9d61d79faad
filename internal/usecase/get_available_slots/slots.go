package get_available_slots

import (
	"time"

	"github.com/coachflow/CF-BookingService/internal/domain"
	"github.com/coachflow/CF-BookingService/pkg/types"
)

// dayRange возвращает границы суток даты в часовом поясе тренера: [00:00, 24:00)
func dayRange(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// filterOfferable оставляет кандидатов, которые проходят окно бронирования
// и не пересекаются с занятыми интервалами
func filterOfferable(
	candidates []types.TimeString,
	date time.Time,
	now time.Time,
	p *domain.AvailabilityPolicy,
	loc *time.Location,
	index *domain.ConflictIndex,
) ([]Slot, error) {
	slots := make([]Slot, 0, len(candidates))
	duration := time.Duration(p.SlotDurationMinutes) * time.Minute

	for _, candidate := range candidates {
		start, err := candidate.At(date, loc)
		if err != nil {
			return nil, err
		}
		end := start.Add(duration)

		if !domain.WithinBookingWindow(start, now, p, loc) {
			continue
		}

		if index.Overlaps(start, end) {
			continue
		}

		slots = append(slots, Slot{
			StartTime:       candidate,
			DurationMinutes: p.SlotDurationMinutes,
		})
	}

	return slots, nil
}
