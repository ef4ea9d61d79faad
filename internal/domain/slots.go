package domain

import (
	"time"

	"github.com/coachflow/CF-BookingService/pkg/types"
)

// GenerateSlots returns the candidate start times for one calendar date.
// Output is a pure function of the inputs: for each configured interval of the
// date's weekday a cursor walks from the interval start in steps of
// (duration + bufferAfter), emitting a candidate whenever the full session ends
// at or before the interval end. A disabled weekday yields no candidates
// regardless of its interval list.
//
// BufferBefore deliberately does not widen the stride: the idle time before a
// session is consumed by whatever precedes it, which conflict filtering
// accounts for by padding existing bookings on both sides.
//
// Intervals are processed in configured order and candidates concatenated;
// policy validation guarantees the per-day intervals are ascending and
// non-overlapping, so the result is chronological.
func GenerateSlots(date time.Time, p *AvailabilityPolicy) ([]types.TimeString, error) {
	day := p.Week.For(date.Weekday())
	if !day.Enabled {
		return []types.TimeString{}, nil
	}

	step := p.SlotDurationMinutes + p.BufferAfterMinutes
	candidates := make([]types.TimeString, 0)

	for _, interval := range day.Intervals {
		start, err := interval.Start.MinutesOfDay()
		if err != nil {
			return nil, err
		}
		end, err := interval.End.MinutesOfDay()
		if err != nil {
			return nil, err
		}

		for cursor := start; cursor+p.SlotDurationMinutes <= end; cursor += step {
			candidate, err := types.NewTimeStringFromMinutes(cursor)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, candidate)
		}
	}

	return candidates, nil
}
