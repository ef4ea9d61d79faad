package domain

import (
	"sort"
	"time"
)

// BusyInterval is an externally sourced [Start, End) range during which the
// coach is unavailable, independent of internal bookings. It is refreshed per
// request and never persisted by this engine.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// occupiedInterval is one absolute [start, end) range a candidate must not touch
type occupiedInterval struct {
	start time.Time
	end   time.Time
}

// ConflictIndex answers overlap queries against the merged set of occupied
// time for one coach and date range. Build it once per query window, then test
// each candidate; cardinalities are tens of intervals, so a sorted linear scan
// is sufficient.
type ConflictIndex struct {
	intervals []occupiedInterval
}

// BuildConflictIndex merges internal bookings and external busy intervals into
// a sorted occupied set.
//
// Bookings are padded with the policy buffers on both sides: a new slot may
// not start inside [bookingStart - bufferBefore, bookingEnd + bufferAfter).
// External busy intervals enter unpadded, since the coach does not control
// their boundaries. Cancelled bookings are excluded entirely.
func BuildConflictIndex(bookings []*Booking, busy []BusyInterval, p *AvailabilityPolicy, loc *time.Location) (*ConflictIndex, error) {
	intervals := make([]occupiedInterval, 0, len(bookings)+len(busy))

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		start, err := booking.StartTime.At(booking.BookingDate, loc)
		if err != nil {
			return nil, err
		}
		end := start.Add(time.Duration(booking.DurationMinutes) * time.Minute)

		intervals = append(intervals, occupiedInterval{
			start: start.Add(-time.Duration(p.BufferBeforeMinutes) * time.Minute),
			end:   end.Add(time.Duration(p.BufferAfterMinutes) * time.Minute),
		})
	}

	for _, interval := range busy {
		if !interval.Start.Before(interval.End) {
			continue
		}
		intervals = append(intervals, occupiedInterval{start: interval.Start, end: interval.End})
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start.Before(intervals[j].start)
	})

	return &ConflictIndex{intervals: mergeIntervals(intervals)}, nil
}

// Overlaps reports whether [start, end) intersects any occupied interval.
// Half-open semantics: a candidate that begins exactly where an occupied
// interval ends (or vice versa) does not overlap.
func (ix *ConflictIndex) Overlaps(start, end time.Time) bool {
	for _, interval := range ix.intervals {
		if !interval.start.Before(end) {
			// sorted by start, nothing further can overlap
			return false
		}
		if interval.end.After(start) {
			return true
		}
	}
	return false
}

// Len returns the number of merged occupied intervals
func (ix *ConflictIndex) Len() int {
	return len(ix.intervals)
}

// mergeIntervals collapses overlapping or touching intervals; input must be
// sorted by start
func mergeIntervals(sorted []occupiedInterval) []occupiedInterval {
	if len(sorted) == 0 {
		return sorted
	}

	merged := make([]occupiedInterval, 0, len(sorted))
	current := sorted[0]

	for _, interval := range sorted[1:] {
		if interval.start.After(current.end) {
			merged = append(merged, current)
			current = interval
			continue
		}
		if interval.end.After(current.end) {
			current.end = interval.end
		}
	}

	return append(merged, current)
}
