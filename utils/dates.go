// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from start to end. Both dates are moved to
// UTC midnight first, so a daylight saving change in between does not shorten
// the count.
func DaysBetween(start, end time.Time) int {
	return int(utcDate(end).Sub(utcDate(start)).Hours() / 24)
}

func utcDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func AddDays(t time.Time, days int) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, days)
}

// AddMonths moves t by n calendar months, clamping the day to the last day
// of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	t = BeginningOfDay(t)
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// SameDayMonth reports whether a and b fall on the same day of the same month,
// ignoring the year.
func SameDayMonth(a, b time.Time) bool {
	return a.Day() == b.Day() && a.Month() == b.Month()
}

// DateIn keeps the calendar date of t and places it at midnight in loc.
func DateIn(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
