package core

import "time"

// dayLabelFormat renders a short human label such as "Jan 2". The chart
// has always grouped by this label rather than an absolute date, which
// makes the keyspace ambiguous across month or year boundaries; within a
// single month's worth of transactions the labels are unique. Keeping the
// derivation in one place so a switch to absolute keys stays a one-line
// change.
const dayLabelFormat = "Jan 2"

// DayLabel returns the bucketing label for a timestamp in the given zone.
func DayLabel(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayLabelFormat)
}

// MonthCalendar returns the ordered day labels for every day of the
// given month.
func MonthCalendar(year int, month time.Month, loc *time.Location) []string {
	total := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	days := make([]string, 0, total)
	for day := 1; day <= total; day++ {
		days = append(days, DayLabel(time.Date(year, month, day, 0, 0, 0, 0, loc), loc))
	}
	return days
}

// MonthBounds returns the inclusive range covering the month that
// contains now: local midnight on the 1st through the last instant of
// the last day.
func MonthBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	last := time.Date(local.Year(), local.Month()+1, 0, 23, 59, 59, int(999*time.Millisecond), loc)
	return first, last
}
