package planner

import (
	"testing"

	"github.com/typedef77/Runny/internal/domain"
)

func TestRecommend(t *testing.T) {
	tests := []struct {
		name           string
		stats          WeeklyStats
		wantType       domain.AdjustmentType
		wantMultiplier float64
		wantIntensity  int
		wantReason     string
	}{
		{
			name:           "low completion reduces",
			stats:          WeeklyStats{PlannedRuns: 4, CompletedRuns: 1, AveragePain: 1, AverageEffort: 5, MissedKeyWorkouts: 1},
			wantType:       domain.AdjustReduce,
			wantMultiplier: 0.8,
			wantReason:     "low completion",
		},
		{
			name:           "pain outranks completion",
			stats:          WeeklyStats{PlannedRuns: 4, CompletedRuns: 4, AveragePain: 6},
			wantType:       domain.AdjustReduce,
			wantMultiplier: 0.7,
			wantIntensity:  -1,
			wantReason:     "pain elevated",
		},
		{
			name:           "missed key workouts reduce",
			stats:          WeeklyStats{PlannedRuns: 4, CompletedRuns: 2, MissedKeyWorkouts: 2, AverageEffort: 5, AveragePain: 1},
			wantType:       domain.AdjustReduce,
			wantMultiplier: 0.85,
			wantReason:     "missed key workouts",
		},
		{
			name:           "hard but complete maintains",
			stats:          WeeklyStats{PlannedRuns: 5, CompletedRuns: 4, AverageEffort: 8.5, AveragePain: 1},
			wantType:       domain.AdjustMaintain,
			wantMultiplier: 1.0,
			wantReason:     "hard but manageable",
		},
		{
			name:           "consistent low effort increases",
			stats:          WeeklyStats{PlannedRuns: 4, CompletedRuns: 4, AverageEffort: 4, AveragePain: 1},
			wantType:       domain.AdjustIncrease,
			wantMultiplier: 1.05,
			wantReason:     "consistent, low effort",
		},
		{
			name:           "default maintains",
			stats:          WeeklyStats{PlannedRuns: 4, CompletedRuns: 3, AverageEffort: 6.5, AveragePain: 2},
			wantType:       domain.AdjustMaintain,
			wantMultiplier: 1.0,
			wantReason:     "progressing well",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recommend(tt.stats)
			if rec.Type != tt.wantType {
				t.Errorf("type = %s, want %s", rec.Type, tt.wantType)
			}
			if rec.VolumeMultiplier != tt.wantMultiplier {
				t.Errorf("multiplier = %v, want %v", rec.VolumeMultiplier, tt.wantMultiplier)
			}
			if rec.IntensityAdjustment != tt.wantIntensity {
				t.Errorf("intensity adjustment = %d, want %d", rec.IntensityAdjustment, tt.wantIntensity)
			}
			if rec.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", rec.Reason, tt.wantReason)
			}
		})
	}
}

func TestRecommendDeterministic(t *testing.T) {
	stats := WeeklyStats{PlannedRuns: 4, CompletedRuns: 1, AveragePain: 1, AverageEffort: 5}
	first := Recommend(stats)
	second := Recommend(stats)
	if first != second {
		t.Errorf("Recommend not deterministic: %+v vs %+v", first, second)
	}
}

func TestCompletionRate(t *testing.T) {
	if got := (WeeklyStats{}).CompletionRate(); got != 0 {
		t.Errorf("empty week completion rate = %v, want 0", got)
	}
	if got := (WeeklyStats{PlannedRuns: 4, CompletedRuns: 3}).CompletionRate(); got != 0.75 {
		t.Errorf("completion rate = %v, want 0.75", got)
	}
}

func TestEffectiveMultiplier(t *testing.T) {
	harsh := Recommendation{Type: domain.AdjustReduce, VolumeMultiplier: 0.7}
	mild := Recommendation{Type: domain.AdjustReduce, VolumeMultiplier: 0.85}
	increase := Recommendation{Type: domain.AdjustIncrease, VolumeMultiplier: 1.05}

	if got := EffectiveMultiplier(harsh, true); got != KeyWorkoutFloor {
		t.Errorf("key workout under harsh reduce = %v, want %v", got, KeyWorkoutFloor)
	}
	if got := EffectiveMultiplier(harsh, false); got != 0.7 {
		t.Errorf("easy workout under harsh reduce = %v, want 0.7", got)
	}
	if got := EffectiveMultiplier(mild, true); got != 0.85 {
		t.Errorf("key workout under mild reduce = %v, want 0.85", got)
	}
	if got := EffectiveMultiplier(increase, true); got != 1.05 {
		t.Errorf("key workout under increase = %v, want 1.05", got)
	}
}
