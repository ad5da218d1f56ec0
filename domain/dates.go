package domain

import "time"

// DateOnly truncates a timestamp to its calendar date (midnight, same location).
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameDate reports whether two timestamps fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns the whole number of calendar days from `from` to `to`.
// Negative when `to` precedes `from`. Both dates are re-anchored at UTC
// midnight first, so DST-shortened days and mixed-zone inputs cannot skew
// the count.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * time.Hour))
}

// DaysInMonth returns the day count of the given month, leap years included.
func DaysInMonth(year int, month time.Month) int {
	firstOfNext := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}

// StartOfWeek returns the Monday on or before the given date.
func StartOfWeek(t time.Time) time.Time {
	d := DateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
