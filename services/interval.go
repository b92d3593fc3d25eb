package services

import "time"

// Date-interval math for stays and availability windows. All booking
// arithmetic runs on timezone-naive calendar dates normalized to midnight UTC;
// the HTTP layer parses user input as plain dates before it reaches here.

// DateOnly strips the time-of-day and timezone components.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one night. Intervals that merely touch do not
// overlap: a checkout day may be the next guest's check-in day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Covers reports whether the window [windowStart, windowEnd], inclusive on
// both ends, contains the stay [start, end].
func Covers(windowStart, windowEnd, start, end time.Time) bool {
	return !windowStart.After(start) && !end.After(windowEnd)
}

// Nights returns the stay length in calendar days, or ErrInvalidRange when
// end is not after start.
func Nights(start, end time.Time) (int, error) {
	if !start.Before(end) {
		return 0, ErrInvalidRange
	}
	return int(DateOnly(end).Sub(DateOnly(start)).Hours() / 24), nil
}
