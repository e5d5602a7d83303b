// Package planner contains the pure scheduling core: the weekly volume
// curve, the workout catalog, the day-placement policy, and the weekly
// adjustment rules. Nothing in this package touches a clock or a store;
// every entry point takes its inputs explicitly so plans are deterministic
// and testable.
package planner

import (
	"math"

	"github.com/typedef77/Runny/internal/domain"
)

// Phase is the coarse progress stage within a plan.
type Phase string

const (
	PhaseBuild Phase = "build"
	PhasePeak  Phase = "peak"
	PhaseTaper Phase = "taper"
)

// RaceConfig holds the fixed per-distance tuning for the volume curve.
type RaceConfig struct {
	PeakWeeklyMinutes float64
}

// raceConfigs is the fixed race configuration table.
var raceConfigs = map[domain.RaceDistance]RaceConfig{
	domain.Race5K:       {PeakWeeklyMinutes: 150},
	domain.Race10K:      {PeakWeeklyMinutes: 200},
	domain.RaceHalf:     {PeakWeeklyMinutes: 280},
	domain.RaceMarathon: {PeakWeeklyMinutes: 360},
}

// RaceConfigFor returns the volume configuration for a race distance.
// Unknown distances fall back to the 5k row; callers are expected to have
// validated the enum already.
func RaceConfigFor(d domain.RaceDistance) RaceConfig {
	if cfg, ok := raceConfigs[d]; ok {
		return cfg
	}
	return raceConfigs[domain.Race5K]
}

// ExperienceMultiplier scales the phase-based base volume by the athlete's
// background: beginners train at 70% of the table, advanced at 130%.
func ExperienceMultiplier(e domain.ExperienceLevel) float64 {
	switch e {
	case domain.ExperienceBeginner:
		return 0.7
	case domain.ExperienceAdvanced:
		return 1.3
	default:
		return 1.0
	}
}

// PhaseForWeek maps a 1-based week index to its training phase.
// Build covers weeks 1..floor(0.6*total), peak runs through
// floor(0.85*total), taper is the remainder to race day.
func PhaseForWeek(week, totalWeeks int) Phase {
	buildEnd := int(math.Floor(0.6 * float64(totalWeeks)))
	peakEnd := int(math.Floor(0.85 * float64(totalWeeks)))
	switch {
	case week <= buildEnd:
		return PhaseBuild
	case week <= peakEnd:
		return PhasePeak
	default:
		return PhaseTaper
	}
}

// VolumeParams carries the athlete-specific inputs to the volume curve.
type VolumeParams struct {
	Distance         domain.RaceDistance
	Experience       domain.ExperienceLevel
	CurrentFrequency int // runs per week coming into the plan
	LongestRecentRun int // minutes
}

// startingVolume is the week-0 baseline the build phase interpolates from.
func (p VolumeParams) startingVolume() float64 {
	return math.Max(float64(p.CurrentFrequency)*30, float64(p.LongestRecentRun)*2)
}

// rawWeeklyVolume is the phase formula before the monotonic-growth guard.
func rawWeeklyVolume(week, totalWeeks int, p VolumeParams) float64 {
	peak := RaceConfigFor(p.Distance).PeakWeeklyMinutes
	buildEnd := int(math.Floor(0.6 * float64(totalWeeks)))
	peakEnd := int(math.Floor(0.85 * float64(totalWeeks)))

	var base float64
	switch PhaseForWeek(week, totalWeeks) {
	case PhaseBuild:
		start := p.startingVolume()
		progress := float64(week) / float64(buildEnd)
		base = start + (0.7*peak-start)*progress
	case PhasePeak:
		peakLen := peakEnd - buildEnd
		if peakLen < 1 {
			peakLen = 1
		}
		progress := float64(week-buildEnd) / float64(peakLen)
		base = 0.7*peak + 0.3*peak*progress
	default: // taper
		taperLen := totalWeeks - peakEnd
		if taperLen < 1 {
			taperLen = 1
		}
		remaining := float64(totalWeeks-week) / float64(taperLen)
		base = peak * (0.4 + 0.4*remaining)
	}

	return base * ExperienceMultiplier(p.Experience)
}

// VolumeSchedule computes target weekly minutes for every week 1..totalWeeks.
//
// The week-over-week increase is capped at 10%: week N is at most 1.1x week
// N-1, with the week-0 baseline at currentFrequency*30. This is the central
// safety invariant of the curve. Computed as a forward iteration so the
// guard chains linearly instead of recursing.
func VolumeSchedule(totalWeeks int, p VolumeParams) []float64 {
	if totalWeeks < 1 {
		return nil
	}
	volumes := make([]float64, totalWeeks)
	prev := float64(p.CurrentFrequency) * 30
	for week := 1; week <= totalWeeks; week++ {
		v := rawWeeklyVolume(week, totalWeeks, p)
		if limit := prev * 1.1; v > limit {
			v = limit
		}
		if v < 0 {
			v = 0
		}
		volumes[week-1] = v
		prev = v
	}
	return volumes
}
