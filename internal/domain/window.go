package domain

import "time"

// WithinBookingWindow reports whether a candidate start satisfies the policy's
// booking window relative to now:
//   - minimum notice: start must be strictly after now + minNoticeHours; a slot
//     exactly at the notice boundary is not offerable
//   - maximum advance: the start's calendar date in the policy timezone must be
//     at most maxAdvanceDays after today's date; the boundary day itself is
//     still offerable
func WithinBookingWindow(start time.Time, now time.Time, p *AvailabilityPolicy, loc *time.Location) bool {
	if !start.After(now.Add(time.Duration(p.MinNoticeHours) * time.Hour)) {
		return false
	}

	startDate := truncateToDate(start.In(loc))
	maxDate := truncateToDate(now.In(loc)).AddDate(0, 0, p.MaxAdvanceDays)

	return !startDate.After(maxDate)
}

// truncateToDate drops the time-of-day component, keeping the location
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
