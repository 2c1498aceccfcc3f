package core

import (
	"fmt"
	"time"
)

// Period is a date-range filter for transaction listings.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ParsePeriod validates a raw period string. The empty string means "all".
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return Period(s), nil
	case "":
		return PeriodAll, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

// Start returns the lower bound of the period containing now. The second
// return value is false for PeriodAll, which has no lower bound. Weeks
// start on the most recent Monday at midnight (ISO weeks).
func (p Period) Start(now time.Time) (time.Time, bool) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case PeriodDay:
		return midnight, true
	case PeriodWeek:
		// Monday=0 .. Sunday=6
		offset := (int(now.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -offset), true
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case PeriodYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}

// MonthBounds returns the first instant of the calendar month containing
// ref and the last millisecond of its final day. Both bounds are inclusive.
func MonthBounds(ref time.Time) (start, end time.Time) {
	start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// InMonth reports whether d falls within the calendar month containing ref.
func InMonth(d, ref time.Time) bool {
	start, end := MonthBounds(ref)
	return !d.Before(start) && !d.After(end)
}
