package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/typedef77/Runny/internal/domain"
	"github.com/typedef77/Runny/internal/planner"
	"github.com/typedef77/Runny/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdjustmentResult is the outcome of an adjustment check: whether future
// workouts were mutated, and the recommendation that drove the decision.
// Recommendation is nil when there was nothing to analyze.
type AdjustmentResult struct {
	Applied        bool                    `json:"applied"`
	Recommendation *planner.Recommendation `json:"adjustment"`
}

// --- Service Interface ---
type AdjustmentService interface {
	// AnalyzeWeeklyPerformance aggregates the athlete's logged performance
	// for the week weekOffset weeks before the one containing now. It
	// returns nil when that week had no planned workouts.
	AnalyzeWeeklyPerformance(ctx context.Context, athleteID primitive.ObjectID, now time.Time, weekOffset int) (*planner.WeeklyStats, error)

	// ApplyWeeklyAdjustment analyzes last week, classifies it, and scales
	// the durations of not-yet-completed workouts from the current week
	// forward. No active plan, or nothing planned last week, is a no-op.
	//
	// Applying twice without new logs in between compounds the multiplier:
	// it scales the current, already-adjusted durations. Invoke at most
	// once per week.
	ApplyWeeklyAdjustment(ctx context.Context, athleteID primitive.ObjectID, now time.Time) (*AdjustmentResult, error)

	// GetAdjustmentHistory returns the athlete's audit trail, newest first.
	GetAdjustmentHistory(ctx context.Context, athleteID primitive.ObjectID) ([]domain.WeeklyAdjustment, error)
}

// --- Service Implementation ---

type adjustmentService struct {
	goalRepo       repository.GoalRepository
	planRepo       repository.TrainingPlanRepository
	workoutRepo    repository.WorkoutRepository
	runLogRepo     repository.RunLogRepository
	adjustmentRepo repository.AdjustmentRepository
	tx             repository.TxRunner
}

// NewAdjustmentService creates a new instance of adjustmentService.
func NewAdjustmentService(
	goalRepo repository.GoalRepository,
	planRepo repository.TrainingPlanRepository,
	workoutRepo repository.WorkoutRepository,
	runLogRepo repository.RunLogRepository,
	adjustmentRepo repository.AdjustmentRepository,
	tx repository.TxRunner,
) AdjustmentService {
	return &adjustmentService{
		goalRepo:       goalRepo,
		planRepo:       planRepo,
		workoutRepo:    workoutRepo,
		runLogRepo:     runLogRepo,
		adjustmentRepo: adjustmentRepo,
		tx:             tx,
	}
}

func (s *adjustmentService) AnalyzeWeeklyPerformance(ctx context.Context, athleteID primitive.ObjectID, now time.Time, weekOffset int) (*planner.WeeklyStats, error) {
	if weekOffset < 1 {
		weekOffset = 1
	}
	weekStart := planner.WeekStart(now).AddDate(0, 0, -7*weekOffset)
	weekEnd := weekStart.AddDate(0, 0, 7)

	planned, err := s.workoutRepo.GetByAthleteAndDateRange(ctx, athleteID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	if len(planned) == 0 {
		return nil, nil
	}

	workoutIDs := make([]primitive.ObjectID, len(planned))
	for i, w := range planned {
		workoutIDs[i] = w.ID
	}
	completed, err := s.runLogRepo.GetCompletedWorkoutIDs(ctx, athleteID, workoutIDs)
	if err != nil {
		return nil, err
	}

	// Averages cover every log in the week, planned and unplanned.
	logs, err := s.runLogRepo.GetByAthleteAndDateRange(ctx, athleteID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	stats := planner.WeeklyStats{
		WeekStart:   weekStart.Format("2006-01-02"),
		PlannedRuns: len(planned),
	}
	for _, w := range planned {
		if completed[w.ID] {
			stats.CompletedRuns++
		} else if w.IsKeyWorkout || w.IsLongRun {
			stats.MissedKeyWorkouts++
		}
	}
	if len(logs) > 0 {
		var effortSum, painSum int
		for _, l := range logs {
			effortSum += l.EffortLevel
			painSum += l.PainLevel
			stats.TotalMinutes += l.DurationMinutes
		}
		stats.AverageEffort = float64(effortSum) / float64(len(logs))
		stats.AveragePain = float64(painSum) / float64(len(logs))
	}
	return &stats, nil
}

func (s *adjustmentService) ApplyWeeklyAdjustment(ctx context.Context, athleteID primitive.ObjectID, now time.Time) (*AdjustmentResult, error) {
	stats, err := s.AnalyzeWeeklyPerformance(ctx, athleteID, now, 1)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return &AdjustmentResult{Applied: false}, nil
	}

	rec := planner.Recommend(*stats)
	if rec.Type == domain.AdjustMaintain {
		return &AdjustmentResult{Applied: false, Recommendation: &rec}, nil
	}

	goal, err := s.goalRepo.GetActiveByAthlete(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &AdjustmentResult{Applied: false, Recommendation: &rec}, nil
		}
		return nil, err
	}
	plan, err := s.planRepo.GetByGoalID(ctx, goal.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &AdjustmentResult{Applied: false, Recommendation: &rec}, nil
		}
		return nil, err
	}

	thisWeekStart := planner.WeekStart(now)
	future, err := s.workoutRepo.GetByPlanFromDate(ctx, plan.ID, thisWeekStart)
	if err != nil {
		return nil, err
	}
	workoutIDs := make([]primitive.ObjectID, len(future))
	for i, w := range future {
		workoutIDs[i] = w.ID
	}
	completed, err := s.runLogRepo.GetCompletedWorkoutIDs(ctx, athleteID, workoutIDs)
	if err != nil {
		return nil, err
	}

	targetWeek := planner.WeekNumberOf(now, plan.StartDate)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, w := range future {
			if completed[w.ID] {
				continue
			}
			multiplier := planner.EffectiveMultiplier(rec, w.IsKeyWorkout || w.IsLongRun)
			newDuration := int(math.Round(float64(w.DurationMinutes) * multiplier))
			if newDuration == w.DurationMinutes {
				continue
			}
			if err := s.workoutRepo.UpdateDuration(ctx, w.ID, newDuration); err != nil {
				return err
			}
		}
		// The audit row records the unclamped classification.
		_, err := s.adjustmentRepo.Create(ctx, &domain.WeeklyAdjustment{
			AthleteID:  athleteID,
			PlanID:     plan.ID,
			WeekNumber: targetWeek,
			Type:       rec.Type,
			Reason:     rec.Reason,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &AdjustmentResult{Applied: true, Recommendation: &rec}, nil
}

func (s *adjustmentService) GetAdjustmentHistory(ctx context.Context, athleteID primitive.ObjectID) ([]domain.WeeklyAdjustment, error) {
	return s.adjustmentRepo.GetByAthlete(ctx, athleteID)
}
