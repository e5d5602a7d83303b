package planner

import "time"

// Plan weeks are Monday-first: Monday is offset 0 and Sunday offset 6.

// DayOffset maps a weekday to its offset within a Monday-first week.
func DayOffset(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

// CircularDayDistance is the distance between two weekdays on the 7-day
// circle: min(|a-b|, 7-|a-b|). Saturday and Sunday are 1 apart, as are
// Sunday and Monday across the week boundary.
func CircularDayDistance(a, b time.Weekday) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	if 7-d < d {
		d = 7 - d
	}
	return d
}

// AdjacentDays reports whether two weekdays are consecutive calendar days,
// in either direction, including across the week boundary.
func AdjacentDays(a, b time.Weekday) bool {
	return CircularDayDistance(a, b) <= 1
}

// WeekStart truncates t to midnight UTC of the Monday of its week.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -DayOffset(day.Weekday()))
}

// WeeksBetween returns the number of whole weeks from the start of the day
// containing `from` until `to`. Partial weeks floor away.
func WeeksBetween(from, to time.Time) int {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / 7
}

// WeekNumberOf returns the 1-based week index of a date within a plan that
// started on planStart (week 1 contains the plan start).
func WeekNumberOf(date, planStart time.Time) int {
	return WeeksBetween(WeekStart(planStart), WeekStart(date)) + 1
}
