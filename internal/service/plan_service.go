package service

import (
	"context"
	"errors"
	"time"

	"github.com/typedef77/Runny/internal/domain"
	"github.com/typedef77/Runny/internal/planner"
	"github.com/typedef77/Runny/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound     = errors.New("training plan not found")
	ErrPlanAccessDenied = errors.New("access denied to this training plan")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrGoalAccessDenied = errors.New("access denied to this goal")
)

// --- Service Interface ---
type PlanService interface {
	// GeneratePlan materializes the full workout calendar for a goal, from
	// now to race day, and returns the created plan's ID. The caller must
	// have validated the goal (future race date, >= 2 permitted days).
	GeneratePlan(ctx context.Context, goal *domain.Goal, now time.Time) (primitive.ObjectID, error)

	// RegeneratePlan deletes the goal's existing plan and all its workouts,
	// then generates a fresh calendar. Run-log references to the deleted
	// workouts are nulled, never deleted. Not additive: any manual state in
	// the old calendar is gone.
	RegeneratePlan(ctx context.Context, goalID, athleteID primitive.ObjectID, now time.Time) (primitive.ObjectID, error)

	// RescheduleWeek moves one week's existing workouts onto a new set of
	// permitted days. Workout content (type, title, description, duration,
	// intensity) is preserved exactly; only dates change. A week with no
	// workouts is a no-op. When the new day set has fewer slots than the
	// week had easy runs, the excess easy runs are dropped.
	RescheduleWeek(ctx context.Context, athleteID, planID primitive.ObjectID, weekNumber int, newPermittedDays []time.Weekday) error

	// GetActivePlan returns the athlete's current plan and its workouts,
	// with the completed flag computed from run logs.
	GetActivePlan(ctx context.Context, athleteID primitive.ObjectID) (*domain.TrainingPlan, []domain.Workout, error)
}

// --- Service Implementation ---

type planService struct {
	goalRepo    repository.GoalRepository
	planRepo    repository.TrainingPlanRepository
	workoutRepo repository.WorkoutRepository
	runLogRepo  repository.RunLogRepository
	tx          repository.TxRunner
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	goalRepo repository.GoalRepository,
	planRepo repository.TrainingPlanRepository,
	workoutRepo repository.WorkoutRepository,
	runLogRepo repository.RunLogRepository,
	tx repository.TxRunner,
) PlanService {
	return &planService{
		goalRepo:    goalRepo,
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		runLogRepo:  runLogRepo,
		tx:          tx,
	}
}

// === Plan Generation ===

func (s *planService) GeneratePlan(ctx context.Context, goal *domain.Goal, now time.Time) (primitive.ObjectID, error) {
	var planID primitive.ObjectID
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		planID, err = s.generate(ctx, goal, now)
		return err
	})
	return planID, err
}

// generate builds and persists the calendar. Must run inside a transaction.
func (s *planService) generate(ctx context.Context, goal *domain.Goal, now time.Time) (primitive.ObjectID, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	totalWeeks := planner.WeeksBetween(today, goal.RaceDate)
	if totalWeeks < 1 {
		totalWeeks = 1
	}

	plan := &domain.TrainingPlan{
		GoalID:    goal.ID,
		AthleteID: goal.AthleteID,
		StartDate: today,
		EndDate:   goal.RaceDate,
	}
	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}

	params := planner.VolumeParams{
		Distance:         goal.RaceDistance,
		Experience:       goal.Experience,
		CurrentFrequency: goal.CurrentFrequency,
		LongestRecentRun: goal.LongestRecentRun,
	}
	volumes := planner.VolumeSchedule(totalWeeks, params)
	ceilings := planner.Ceilings{
		WeekdayMinutes: goal.MaxWeekdayMinutes,
		WeekendMinutes: goal.MaxWeekendMinutes,
	}
	firstWeekStart := planner.WeekStart(today)

	var workouts []domain.Workout
	for week := 1; week <= totalWeeks; week++ {
		phase := planner.PhaseForWeek(week, totalWeeks)
		catalog := planner.Catalog(goal.Experience, phase)
		placements := planner.PlaceWeek(goal.PermittedDays, volumes[week-1], ceilings, catalog)
		weekStart := firstWeekStart.AddDate(0, 0, (week-1)*7)

		for _, p := range placements {
			workouts = append(workouts, domain.Workout{
				PlanID:           planID,
				AthleteID:        goal.AthleteID,
				Date:             weekStart.AddDate(0, 0, p.DayOffset),
				WeekNumber:       week,
				Type:             p.Archetype.Type,
				Title:            p.Archetype.Title,
				Description:      p.Archetype.Description,
				DurationMinutes:  p.DurationMinutes,
				Intensity:        p.Archetype.Intensity,
				TiredAlternative: p.Archetype.TiredAlternative,
				IsKeyWorkout:     p.Archetype.IsKeyWorkout,
				IsLongRun:        p.Archetype.IsLongRun,
			})
		}
	}

	if err := s.workoutRepo.CreateMany(ctx, workouts); err != nil {
		return primitive.NilObjectID, err
	}
	return planID, nil
}

func (s *planService) RegeneratePlan(ctx context.Context, goalID, athleteID primitive.ObjectID, now time.Time) (primitive.ObjectID, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrGoalNotFound
		}
		return primitive.NilObjectID, err
	}
	if goal.AthleteID != athleteID {
		return primitive.NilObjectID, ErrGoalAccessDenied
	}

	var planID primitive.ObjectID
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.deletePlanForGoal(ctx, goalID); err != nil {
			return err
		}
		var err error
		planID, err = s.generate(ctx, goal, now)
		return err
	})
	return planID, err
}

// deletePlanForGoal cascades a goal's plan away: workouts first (nulling any
// run-log references to them), then the plan row. Missing plan is fine.
func (s *planService) deletePlanForGoal(ctx context.Context, goalID primitive.ObjectID) error {
	plan, err := s.planRepo.GetByGoalID(ctx, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	deletedIDs, err := s.workoutRepo.DeleteByPlanID(ctx, plan.ID)
	if err != nil {
		return err
	}
	if err := s.runLogRepo.ClearWorkoutRefs(ctx, deletedIDs); err != nil {
		return err
	}
	return s.planRepo.DeleteByGoalID(ctx, goalID)
}

// === Week Rescheduling ===

func (s *planService) RescheduleWeek(ctx context.Context, athleteID, planID primitive.ObjectID, weekNumber int, newPermittedDays []time.Weekday) error {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	if plan.AthleteID != athleteID {
		return ErrPlanAccessDenied
	}

	existing, err := s.workoutRepo.GetByPlanAndWeek(ctx, planID, weekNumber)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		// Nothing scheduled that week; an expected steady state, not an error.
		return nil
	}

	// Partition the week: the long run, the hard session, everything else.
	var longRun, keyWorkout *domain.Workout
	var easyRuns []domain.Workout
	for i := range existing {
		w := existing[i]
		switch {
		case w.IsLongRun && longRun == nil:
			longRun = &existing[i]
		case w.IsKeyWorkout && !w.IsLongRun && keyWorkout == nil:
			keyWorkout = &existing[i]
		default:
			easyRuns = append(easyRuns, w)
		}
	}

	// Any original date recovers the same Monday-aligned week start.
	weekStart := planner.WeekStart(existing[0].Date)
	days := planner.NormalizeDays(newPermittedDays)

	// Re-run the placement priority over the surviving workout records,
	// keeping their content and moving only the dates.
	var rescheduled []domain.Workout
	remaining := days

	longDay := time.Weekday(-1)
	if longRun != nil {
		if d, ok := planner.LongRunDay(remaining); ok {
			longDay = d
			rescheduled = append(rescheduled, movedWorkout(*longRun, weekStart, d))
			remaining = planner.RemoveDay(remaining, d)
		}
	}
	if keyWorkout != nil && len(remaining) > 0 {
		d, ok := planner.KeyWorkoutDay(remaining, longDay)
		if longDay < 0 {
			// No long run this week: any remaining day qualifies, take the middle.
			d, ok = remaining[len(remaining)/2], true
		}
		if ok {
			rescheduled = append(rescheduled, movedWorkout(*keyWorkout, weekStart, d))
			remaining = planner.RemoveDay(remaining, d)
		}
	}
	// Easy runs fill the leftover days in original order, truncating to the
	// shorter list. Excess easy runs are dropped, not carried over.
	for i := 0; i < len(easyRuns) && i < len(remaining); i++ {
		rescheduled = append(rescheduled, movedWorkout(easyRuns[i], weekStart, remaining[i]))
	}

	originalIDs := make([]primitive.ObjectID, len(existing))
	for i, w := range existing {
		originalIDs[i] = w.ID
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.workoutRepo.DeleteByIDs(ctx, originalIDs); err != nil {
			return err
		}
		if err := s.runLogRepo.ClearWorkoutRefs(ctx, originalIDs); err != nil {
			return err
		}
		return s.workoutRepo.CreateMany(ctx, rescheduled)
	})
}

// movedWorkout clones a workout's content onto a new date within the week.
func movedWorkout(w domain.Workout, weekStart time.Time, day time.Weekday) domain.Workout {
	return domain.Workout{
		PlanID:           w.PlanID,
		AthleteID:        w.AthleteID,
		Date:             weekStart.AddDate(0, 0, planner.DayOffset(day)),
		WeekNumber:       w.WeekNumber,
		Type:             w.Type,
		Title:            w.Title,
		Description:      w.Description,
		DurationMinutes:  w.DurationMinutes,
		Intensity:        w.Intensity,
		TiredAlternative: w.TiredAlternative,
		IsKeyWorkout:     w.IsKeyWorkout,
		IsLongRun:        w.IsLongRun,
	}
}

// === Plan Retrieval ===

func (s *planService) GetActivePlan(ctx context.Context, athleteID primitive.ObjectID) (*domain.TrainingPlan, []domain.Workout, error) {
	goal, err := s.goalRepo.GetActiveByAthlete(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrGoalNotFound
		}
		return nil, nil, err
	}
	plan, err := s.planRepo.GetByGoalID(ctx, goal.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrPlanNotFound
		}
		return nil, nil, err
	}
	workouts, err := s.workoutRepo.GetByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.fillCompletion(ctx, athleteID, workouts); err != nil {
		return nil, nil, err
	}
	return plan, workouts, nil
}

// fillCompletion derives each workout's completed view from run logs.
func (s *planService) fillCompletion(ctx context.Context, athleteID primitive.ObjectID, workouts []domain.Workout) error {
	if len(workouts) == 0 {
		return nil
	}
	ids := make([]primitive.ObjectID, len(workouts))
	for i, w := range workouts {
		ids[i] = w.ID
	}
	completed, err := s.runLogRepo.GetCompletedWorkoutIDs(ctx, athleteID, ids)
	if err != nil {
		return err
	}
	for i := range workouts {
		workouts[i].Completed = completed[workouts[i].ID]
	}
	return nil
}
