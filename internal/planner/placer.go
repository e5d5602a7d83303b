package planner

import (
	"math"
	"sort"
	"time"

	"github.com/typedef77/Runny/internal/domain"
)

// Placement assigns one archetype to a concrete day of the week with a
// resolved duration. DayOffset is the day's offset from the week's Monday.
type Placement struct {
	Archetype       Archetype
	Day             time.Weekday
	DayOffset       int
	DurationMinutes int
}

// Ceilings caps session length per day class: days 1-5 (Mon-Fri) use the
// weekday ceiling, Saturday and Sunday the weekend one.
type Ceilings struct {
	WeekdayMinutes int
	WeekendMinutes int
}

// For returns the applicable ceiling for a day.
func (c Ceilings) For(d time.Weekday) int {
	if d == time.Saturday || d == time.Sunday {
		return c.WeekendMinutes
	}
	return c.WeekdayMinutes
}

// NormalizeDays orders weekdays Monday-first and drops duplicates.
func NormalizeDays(days []time.Weekday) []time.Weekday {
	seen := make(map[time.Weekday]bool, len(days))
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return DayOffset(out[i]) < DayOffset(out[j]) })
	return out
}

// LongRunDay picks the long run's day: a weekend day when one is permitted
// (the max weekday number wins, so Saturday(6) beats Sunday(0)), otherwise
// the chronologically last permitted day. Returns false for an empty set.
func LongRunDay(permitted []time.Weekday) (time.Weekday, bool) {
	days := NormalizeDays(permitted)
	if len(days) == 0 {
		return time.Sunday, false
	}
	best := time.Weekday(-1)
	for _, d := range days {
		if (d == time.Saturday || d == time.Sunday) && int(d) > int(best) {
			best = d
		}
	}
	if best >= 0 {
		return best, true
	}
	return days[len(days)-1], true
}

// KeyWorkoutDay picks the hard session's day from the days left after the
// long run. It prefers a day not calendar-adjacent to the long run; among
// several such candidates it takes the middle one by list index, keeping the
// hard effort away from both the long run and the week edges. When every
// remaining day is adjacent it falls back to the first remaining day.
func KeyWorkoutDay(remaining []time.Weekday, longRunDay time.Weekday) (time.Weekday, bool) {
	days := NormalizeDays(remaining)
	if len(days) == 0 {
		return time.Sunday, false
	}
	var candidates []time.Weekday
	for _, d := range days {
		if !AdjacentDays(d, longRunDay) {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) > 0 {
		return candidates[len(candidates)/2], true
	}
	return days[0], true
}

// keyArchetype selects the non-long key archetype to schedule this week.
// When both tempo and interval are eligible the higher-intensity interval
// wins, so intermediates pick up intervals as soon as peak phase unlocks
// them.
func keyArchetype(catalog []Archetype) (Archetype, bool) {
	var picked Archetype
	found := false
	for _, a := range catalog {
		if a.IsKeyWorkout && !a.IsLongRun {
			picked = a
			found = true
		}
	}
	return picked, found
}

func findArchetype(catalog []Archetype, match func(Archetype) bool) (Archetype, bool) {
	for _, a := range catalog {
		if match(a) {
			return a, true
		}
	}
	return Archetype{}, false
}

func roundMinutes(v float64) int {
	return int(math.Round(v))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// PlaceWeek assigns the week's catalog to the permitted days under the
// weekly volume target and per-day ceilings:
//
//  1. The long run takes 35% of the weekly volume on its preferred day.
//  2. The key workout (if the catalog has one) takes 30% of what remains,
//     on a day not adjacent to the long run when possible.
//  3. Every other permitted day gets an easy run; the leftover volume is
//     split evenly across them, each capped by its day's ceiling.
//
// An empty permitted set places nothing. Placements come back in
// chronological (Monday-first) order.
func PlaceWeek(permitted []time.Weekday, weeklyVolume float64, ceilings Ceilings, catalog []Archetype) []Placement {
	days := NormalizeDays(permitted)
	if len(days) == 0 {
		return nil
	}

	var placements []Placement

	longDay, _ := LongRunDay(days)
	longArch, ok := findArchetype(catalog, func(a Archetype) bool { return a.IsLongRun })
	remainingVolume := weeklyVolume
	remaining := days
	if ok {
		dur := minInt(roundMinutes(weeklyVolume*longArch.DurationWeight), ceilings.For(longDay))
		placements = append(placements, Placement{
			Archetype:       longArch,
			Day:             longDay,
			DayOffset:       DayOffset(longDay),
			DurationMinutes: dur,
		})
		remainingVolume -= float64(dur)
		remaining = RemoveDay(remaining, longDay)
	}

	if key, ok := keyArchetype(catalog); ok && len(remaining) > 0 {
		keyDay, _ := KeyWorkoutDay(remaining, longDay)
		dur := minInt(roundMinutes(remainingVolume*key.DurationWeight), ceilings.For(keyDay))
		placements = append(placements, Placement{
			Archetype:       key,
			Day:             keyDay,
			DayOffset:       DayOffset(keyDay),
			DurationMinutes: dur,
		})
		remainingVolume -= float64(dur)
		remaining = RemoveDay(remaining, keyDay)
	}

	if easy, ok := findArchetype(catalog, func(a Archetype) bool { return a.Type == domain.WorkoutEasy }); ok && len(remaining) > 0 {
		perDay := remainingVolume / float64(len(remaining))
		for _, d := range remaining {
			dur := minInt(roundMinutes(perDay), ceilings.For(d))
			placements = append(placements, Placement{
				Archetype:       easy,
				Day:             d,
				DayOffset:       DayOffset(d),
				DurationMinutes: dur,
			})
		}
	}

	sort.Slice(placements, func(i, j int) bool { return placements[i].DayOffset < placements[j].DayOffset })
	return placements
}

// RemoveDay returns days without the given weekday, preserving order.
func RemoveDay(days []time.Weekday, day time.Weekday) []time.Weekday {
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if d != day {
			out = append(out, d)
		}
	}
	return out
}
