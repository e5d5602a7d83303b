package planner

import "github.com/typedef77/Runny/internal/domain"

// Archetype describes a workout template the placer can schedule. The
// DurationWeight is a relative share of weekly volume, not literal minutes.
type Archetype struct {
	Type             domain.WorkoutType
	Title            string
	Description      string
	DurationWeight   float64
	Intensity        domain.Intensity
	IsKeyWorkout     bool
	IsLongRun        bool
	TiredAlternative string
}

var (
	easyArchetype = Archetype{
		Type:             domain.WorkoutEasy,
		Title:            "Easy Run",
		Description:      "Conversational pace. You should be able to speak full sentences throughout.",
		DurationWeight:   1.0,
		Intensity:        domain.IntensityLow,
		TiredAlternative: "Cut the run in half, or walk briskly for the same time.",
	}
	tempoArchetype = Archetype{
		Type:             domain.WorkoutTempo,
		Title:            "Tempo Run",
		Description:      "10 min easy warmup, then sustained comfortably-hard effort, 10 min cooldown.",
		DurationWeight:   0.3,
		Intensity:        domain.IntensityModerate,
		IsKeyWorkout:     true,
		TiredAlternative: "Run the full time easy instead of at tempo effort.",
	}
	intervalArchetype = Archetype{
		Type:             domain.WorkoutInterval,
		Title:            "Interval Session",
		Description:      "Warmup, then repeats of 2-4 min hard with equal jog recovery, cooldown.",
		DurationWeight:   0.3,
		Intensity:        domain.IntensityHigh,
		IsKeyWorkout:     true,
		TiredAlternative: "Halve the number of repeats and keep the recoveries easy.",
	}
	longArchetype = Archetype{
		Type:             domain.WorkoutLong,
		Title:            "Long Run",
		Description:      "Steady easy effort for the full duration. Practice fueling on runs over an hour.",
		DurationWeight:   0.35,
		Intensity:        domain.IntensityLow,
		IsKeyWorkout:     true,
		IsLongRun:        true,
		TiredAlternative: "Shorten to 60% of the planned time at the same easy effort.",
	}
)

// Catalog returns the ordered workout vocabulary available to an athlete in a
// given phase. Easy and long runs are always present. Tempo is withheld from
// beginners. Intervals require an advanced athlete, or an intermediate one in
// the peak phase.
func Catalog(experience domain.ExperienceLevel, phase Phase) []Archetype {
	archetypes := []Archetype{easyArchetype}
	if experience != domain.ExperienceBeginner {
		archetypes = append(archetypes, tempoArchetype)
	}
	if experience == domain.ExperienceAdvanced ||
		(experience == domain.ExperienceIntermediate && phase == PhasePeak) {
		archetypes = append(archetypes, intervalArchetype)
	}
	return append(archetypes, longArchetype)
}
