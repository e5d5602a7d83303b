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
	ErrInvalidRaceDistance = errors.New("invalid race distance")
	ErrInvalidExperience   = errors.New("invalid experience level")
	ErrRaceDateNotFuture   = errors.New("race date must be in the future")
	ErrTooFewPermittedDays = errors.New("at least two permitted days are required")
	ErrInvalidSessionCap   = errors.New("session time ceilings must be positive")
)

// GoalInput carries the fields an athlete supplies when creating or
// updating a goal.
type GoalInput struct {
	RaceDistance      domain.RaceDistance
	RaceDate          time.Time
	TargetTime        *string
	Experience        domain.ExperienceLevel
	CurrentFrequency  int
	LongestRecentRun  int
	PermittedDays     []time.Weekday
	MaxWeekdayMinutes int
	MaxWeekendMinutes int
}

// validate applies the input invariants the planner core assumes hold.
// The core itself never re-checks them.
func (in *GoalInput) validate(now time.Time) error {
	if !domain.ValidRaceDistance(in.RaceDistance) {
		return ErrInvalidRaceDistance
	}
	if !domain.ValidExperienceLevel(in.Experience) {
		return ErrInvalidExperience
	}
	if !in.RaceDate.After(now) {
		return ErrRaceDateNotFuture
	}
	in.PermittedDays = planner.NormalizeDays(in.PermittedDays)
	if len(in.PermittedDays) < 2 {
		return ErrTooFewPermittedDays
	}
	if in.MaxWeekdayMinutes <= 0 || in.MaxWeekendMinutes <= 0 {
		return ErrInvalidSessionCap
	}
	if in.CurrentFrequency < 0 {
		in.CurrentFrequency = 0
	}
	if in.LongestRecentRun < 0 {
		in.LongestRecentRun = 0
	}
	return nil
}

// --- Service Interface ---
type GoalService interface {
	// CreateGoal validates the input, deactivates any prior active goal,
	// persists the new one, and generates its training plan.
	CreateGoal(ctx context.Context, athleteID primitive.ObjectID, input GoalInput, now time.Time) (*domain.Goal, primitive.ObjectID, error)

	// UpdateGoal rewrites an existing goal's parameters and regenerates its
	// plan from scratch. Goal changes invalidate the whole calendar; the
	// plan is never patched in place.
	UpdateGoal(ctx context.Context, athleteID, goalID primitive.ObjectID, input GoalInput, now time.Time) (*domain.Goal, primitive.ObjectID, error)

	// GetActiveGoal returns the athlete's current goal.
	GetActiveGoal(ctx context.Context, athleteID primitive.ObjectID) (*domain.Goal, error)

	// DeleteGoal removes a goal and cascades to its plan and workouts.
	DeleteGoal(ctx context.Context, athleteID, goalID primitive.ObjectID) error
}

// --- Service Implementation ---

type goalService struct {
	goalRepo    repository.GoalRepository
	planRepo    repository.TrainingPlanRepository
	workoutRepo repository.WorkoutRepository
	runLogRepo  repository.RunLogRepository
	planService PlanService
	tx          repository.TxRunner
}

// NewGoalService creates a new instance of goalService.
func NewGoalService(
	goalRepo repository.GoalRepository,
	planRepo repository.TrainingPlanRepository,
	workoutRepo repository.WorkoutRepository,
	runLogRepo repository.RunLogRepository,
	planService PlanService,
	tx repository.TxRunner,
) GoalService {
	return &goalService{
		goalRepo:    goalRepo,
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		runLogRepo:  runLogRepo,
		planService: planService,
		tx:          tx,
	}
}

func (s *goalService) CreateGoal(ctx context.Context, athleteID primitive.ObjectID, input GoalInput, now time.Time) (*domain.Goal, primitive.ObjectID, error) {
	if err := input.validate(now); err != nil {
		return nil, primitive.NilObjectID, err
	}

	goal := &domain.Goal{
		AthleteID:         athleteID,
		RaceDistance:      input.RaceDistance,
		RaceDate:          input.RaceDate,
		TargetTime:        input.TargetTime,
		Experience:        input.Experience,
		CurrentFrequency:  input.CurrentFrequency,
		LongestRecentRun:  input.LongestRecentRun,
		PermittedDays:     input.PermittedDays,
		MaxWeekdayMinutes: input.MaxWeekdayMinutes,
		MaxWeekendMinutes: input.MaxWeekendMinutes,
		IsActive:          true,
	}

	// Superseded goals are deactivated, never deleted.
	if err := s.goalRepo.DeactivateAllForAthlete(ctx, athleteID); err != nil {
		return nil, primitive.NilObjectID, err
	}
	goalID, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	goal.ID = goalID

	// GeneratePlan runs the calendar writes under its own transaction.
	planID, err := s.planService.GeneratePlan(ctx, goal, now)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	return goal, planID, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, athleteID, goalID primitive.ObjectID, input GoalInput, now time.Time) (*domain.Goal, primitive.ObjectID, error) {
	if err := input.validate(now); err != nil {
		return nil, primitive.NilObjectID, err
	}

	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, primitive.NilObjectID, ErrGoalNotFound
		}
		return nil, primitive.NilObjectID, err
	}
	if goal.AthleteID != athleteID {
		return nil, primitive.NilObjectID, ErrGoalAccessDenied
	}

	goal.RaceDistance = input.RaceDistance
	goal.RaceDate = input.RaceDate
	goal.TargetTime = input.TargetTime
	goal.Experience = input.Experience
	goal.CurrentFrequency = input.CurrentFrequency
	goal.LongestRecentRun = input.LongestRecentRun
	goal.PermittedDays = input.PermittedDays
	goal.MaxWeekdayMinutes = input.MaxWeekdayMinutes
	goal.MaxWeekendMinutes = input.MaxWeekendMinutes

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, primitive.NilObjectID, err
	}
	planID, err := s.planService.RegeneratePlan(ctx, goalID, athleteID, now)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	return goal, planID, nil
}

func (s *goalService) GetActiveGoal(ctx context.Context, athleteID primitive.ObjectID) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetActiveByAthlete(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, athleteID, goalID primitive.ObjectID) error {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGoalNotFound
		}
		return err
	}
	if goal.AthleteID != athleteID {
		return ErrGoalAccessDenied
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		plan, err := s.planRepo.GetByGoalID(ctx, goalID)
		if err == nil {
			deletedIDs, err := s.workoutRepo.DeleteByPlanID(ctx, plan.ID)
			if err != nil {
				return err
			}
			if err := s.runLogRepo.ClearWorkoutRefs(ctx, deletedIDs); err != nil {
				return err
			}
			if err := s.planRepo.Delete(ctx, plan.ID); err != nil {
				return err
			}
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return s.goalRepo.Delete(ctx, goalID)
	})
}
