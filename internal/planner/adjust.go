package planner

import "github.com/typedef77/Runny/internal/domain"

// WeeklyStats aggregates one week of logged performance. Averages cover all
// logs in the week, planned and unplanned alike; missing data stays at zero
// rather than propagating as NaN.
type WeeklyStats struct {
	WeekStart         string  `json:"weekStart"` // ISO date of the week's Monday
	PlannedRuns       int     `json:"plannedRuns"`
	CompletedRuns     int     `json:"completedRuns"`
	MissedKeyWorkouts int     `json:"missedKeyWorkouts"`
	AverageEffort     float64 `json:"averageEffort"`
	AveragePain       float64 `json:"averagePain"`
	TotalMinutes      int     `json:"totalMinutes"`
}

// CompletionRate is completed over planned runs, zero when nothing was planned.
func (s WeeklyStats) CompletionRate() float64 {
	if s.PlannedRuns == 0 {
		return 0
	}
	return float64(s.CompletedRuns) / float64(s.PlannedRuns)
}

// Recommendation is the outcome of classifying a week's stats: a direction,
// a multiplier for future workout durations, and the reason for the call.
type Recommendation struct {
	Type                domain.AdjustmentType `json:"type"`
	VolumeMultiplier    float64               `json:"volumeMultiplier"`
	IntensityAdjustment int                   `json:"intensityAdjustment"`
	Reason              string                `json:"reason"`
}

// KeyWorkoutFloor is the harshest cut a key or long-run session may take
// from a reduce recommendation.
const KeyWorkoutFloor = 0.85

// Recommend classifies a week's stats into an adjustment. The rules overlap,
// so they are evaluated in a fixed order and the first match wins: pain
// outranks completion, completion outranks missed key sessions.
func Recommend(stats WeeklyStats) Recommendation {
	completion := stats.CompletionRate()

	switch {
	case stats.AveragePain >= 5:
		return Recommendation{
			Type:                domain.AdjustReduce,
			VolumeMultiplier:    0.7,
			IntensityAdjustment: -1,
			Reason:              "pain elevated",
		}
	case completion < 0.5:
		return Recommendation{
			Type:             domain.AdjustReduce,
			VolumeMultiplier: 0.8,
			Reason:           "low completion",
		}
	case stats.MissedKeyWorkouts >= 2:
		return Recommendation{
			Type:             domain.AdjustReduce,
			VolumeMultiplier: 0.85,
			Reason:           "missed key workouts",
		}
	case stats.AverageEffort >= 8 && completion >= 0.8:
		return Recommendation{
			Type:             domain.AdjustMaintain,
			VolumeMultiplier: 1.0,
			Reason:           "hard but manageable",
		}
	case stats.AverageEffort < 6 && completion >= 0.9 && stats.AveragePain < 2:
		return Recommendation{
			Type:             domain.AdjustIncrease,
			VolumeMultiplier: 1.05,
			Reason:           "consistent, low effort",
		}
	default:
		return Recommendation{
			Type:             domain.AdjustMaintain,
			VolumeMultiplier: 1.0,
			Reason:           "progressing well",
		}
	}
}

// EffectiveMultiplier protects key and long-run sessions from reductions
// harsher than the floor; all other combinations pass through unchanged.
func EffectiveMultiplier(rec Recommendation, keyOrLongRun bool) float64 {
	if keyOrLongRun && rec.Type == domain.AdjustReduce && rec.VolumeMultiplier < KeyWorkoutFloor {
		return KeyWorkoutFloor
	}
	return rec.VolumeMultiplier
}
