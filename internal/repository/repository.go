package repository

import (
	"context"
	"time"

	"github.com/typedef77/Runny/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TxRunner executes fn inside a single atomic transaction. Every write fn
// performs through the repositories succeeds or fails together, so readers
// never observe a half-regenerated calendar.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines access to athlete accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	AddFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error
	RemoveFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error
}

// GoalRepository defines access to training goals.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Goal, error)
	GetActiveByAthlete(ctx context.Context, athleteID primitive.ObjectID) (*domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	DeactivateAllForAthlete(ctx context.Context, athleteID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TrainingPlanRepository defines access to materialized plans.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	GetByGoalID(ctx context.Context, goalID primitive.ObjectID) (*domain.TrainingPlan, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByGoalID(ctx context.Context, goalID primitive.ObjectID) error
}

// WorkoutRepository defines access to scheduled workouts.
type WorkoutRepository interface {
	CreateMany(ctx context.Context, workouts []domain.Workout) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Workout, error)
	GetByPlanAndWeek(ctx context.Context, planID primitive.ObjectID, weekNumber int) ([]domain.Workout, error)
	GetByPlanFromDate(ctx context.Context, planID primitive.ObjectID, from time.Time) ([]domain.Workout, error)
	GetByAthleteAndDateRange(ctx context.Context, athleteID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error)
	UpdateDuration(ctx context.Context, id primitive.ObjectID, durationMinutes int) error
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// RunLogRepository defines access to logged runs.
type RunLogRepository interface {
	Create(ctx context.Context, log *domain.RunLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RunLog, error)
	GetByAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.RunLog, error)
	GetByAthleteAndDateRange(ctx context.Context, athleteID primitive.ObjectID, from, to time.Time) ([]domain.RunLog, error)
	GetCompletingByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) (*domain.RunLog, error)
	GetCompletedWorkoutIDs(ctx context.Context, athleteID primitive.ObjectID, workoutIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error)
	ClearWorkoutRefs(ctx context.Context, workoutIDs []primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID, athleteID primitive.ObjectID) error
}

// AdjustmentRepository defines access to the weekly adjustment audit log.
type AdjustmentRepository interface {
	Create(ctx context.Context, adjustment *domain.WeeklyAdjustment) (primitive.ObjectID, error)
	GetByAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.WeeklyAdjustment, error)
}

// RunPhotoRepository defines access to run photo metadata.
type RunPhotoRepository interface {
	Create(ctx context.Context, photo *domain.RunPhoto) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RunPhoto, error)
	GetByRunLogID(ctx context.Context, runLogID primitive.ObjectID) (*domain.RunPhoto, error)
}
