package service

import (
	"context"
	"sort"
	"time"

	"github.com/typedef77/Runny/internal/domain"
	"github.com/typedef77/Runny/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. Single-goroutine test use only.

type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- users ---

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	user.ID = primitive.NewObjectID()
	clone := *user
	r.users[user.ID] = &clone
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) AddFollowing(_ context.Context, userID, targetID primitive.ObjectID) error {
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, id := range u.FollowingIDs {
		if id == targetID {
			return nil
		}
	}
	u.FollowingIDs = append(u.FollowingIDs, targetID)
	return nil
}

func (r *fakeUserRepo) RemoveFollowing(_ context.Context, userID, targetID primitive.ObjectID) error {
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	kept := u.FollowingIDs[:0]
	for _, id := range u.FollowingIDs {
		if id != targetID {
			kept = append(kept, id)
		}
	}
	u.FollowingIDs = kept
	return nil
}

// --- goals ---

type fakeGoalRepo struct {
	goals map[primitive.ObjectID]*domain.Goal
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: make(map[primitive.ObjectID]*domain.Goal)}
}

func (r *fakeGoalRepo) Create(_ context.Context, goal *domain.Goal) (primitive.ObjectID, error) {
	goal.ID = primitive.NewObjectID()
	clone := *goal
	r.goals[goal.ID] = &clone
	return goal.ID, nil
}

func (r *fakeGoalRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Goal, error) {
	if g, ok := r.goals[id]; ok {
		clone := *g
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeGoalRepo) GetActiveByAthlete(_ context.Context, athleteID primitive.ObjectID) (*domain.Goal, error) {
	for _, g := range r.goals {
		if g.AthleteID == athleteID && g.IsActive {
			clone := *g
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeGoalRepo) Update(_ context.Context, goal *domain.Goal) error {
	if _, ok := r.goals[goal.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *goal
	r.goals[goal.ID] = &clone
	return nil
}

func (r *fakeGoalRepo) DeactivateAllForAthlete(_ context.Context, athleteID primitive.ObjectID) error {
	for _, g := range r.goals {
		if g.AthleteID == athleteID {
			g.IsActive = false
		}
	}
	return nil
}

func (r *fakeGoalRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.goals[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.goals, id)
	return nil
}

// --- plans ---

type fakePlanRepo struct {
	plans map[primitive.ObjectID]*domain.TrainingPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[primitive.ObjectID]*domain.TrainingPlan)}
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	clone := *plan
	r.plans[plan.ID] = &clone
	return plan.ID, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	if p, ok := r.plans[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) GetByGoalID(_ context.Context, goalID primitive.ObjectID) (*domain.TrainingPlan, error) {
	for _, p := range r.plans {
		if p.GoalID == goalID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

func (r *fakePlanRepo) DeleteByGoalID(_ context.Context, goalID primitive.ObjectID) error {
	for id, p := range r.plans {
		if p.GoalID == goalID {
			delete(r.plans, id)
		}
	}
	return nil
}

// --- workouts ---

type fakeWorkoutRepo struct {
	workouts map[primitive.ObjectID]*domain.Workout
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[primitive.ObjectID]*domain.Workout)}
}

func (r *fakeWorkoutRepo) CreateMany(_ context.Context, workouts []domain.Workout) error {
	for i := range workouts {
		if workouts[i].ID == primitive.NilObjectID {
			workouts[i].ID = primitive.NewObjectID()
		}
		clone := workouts[i]
		r.workouts[clone.ID] = &clone
	}
	return nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	if w, ok := r.workouts[id]; ok {
		clone := *w
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) collect(match func(*domain.Workout) bool) []domain.Workout {
	var out []domain.Workout
	for _, w := range r.workouts {
		if match(w) {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r *fakeWorkoutRepo) GetByPlanID(_ context.Context, planID primitive.ObjectID) ([]domain.Workout, error) {
	return r.collect(func(w *domain.Workout) bool { return w.PlanID == planID }), nil
}

func (r *fakeWorkoutRepo) GetByPlanAndWeek(_ context.Context, planID primitive.ObjectID, weekNumber int) ([]domain.Workout, error) {
	return r.collect(func(w *domain.Workout) bool {
		return w.PlanID == planID && w.WeekNumber == weekNumber
	}), nil
}

func (r *fakeWorkoutRepo) GetByPlanFromDate(_ context.Context, planID primitive.ObjectID, from time.Time) ([]domain.Workout, error) {
	return r.collect(func(w *domain.Workout) bool {
		return w.PlanID == planID && !w.Date.Before(from)
	}), nil
}

func (r *fakeWorkoutRepo) GetByAthleteAndDateRange(_ context.Context, athleteID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error) {
	return r.collect(func(w *domain.Workout) bool {
		return w.AthleteID == athleteID && !w.Date.Before(from) && w.Date.Before(to)
	}), nil
}

func (r *fakeWorkoutRepo) UpdateDuration(_ context.Context, id primitive.ObjectID, durationMinutes int) error {
	w, ok := r.workouts[id]
	if !ok {
		return repository.ErrNotFound
	}
	w.DurationMinutes = durationMinutes
	return nil
}

func (r *fakeWorkoutRepo) DeleteByIDs(_ context.Context, ids []primitive.ObjectID) error {
	for _, id := range ids {
		delete(r.workouts, id)
	}
	return nil
}

func (r *fakeWorkoutRepo) DeleteByPlanID(_ context.Context, planID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for id, w := range r.workouts {
		if w.PlanID == planID {
			ids = append(ids, id)
			delete(r.workouts, id)
		}
	}
	return ids, nil
}

// --- run logs ---

type fakeRunLogRepo struct {
	logs map[primitive.ObjectID]*domain.RunLog
}

func newFakeRunLogRepo() *fakeRunLogRepo {
	return &fakeRunLogRepo{logs: make(map[primitive.ObjectID]*domain.RunLog)}
}

func (r *fakeRunLogRepo) Create(_ context.Context, log *domain.RunLog) (primitive.ObjectID, error) {
	log.ID = primitive.NewObjectID()
	clone := *log
	r.logs[log.ID] = &clone
	return log.ID, nil
}

func (r *fakeRunLogRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.RunLog, error) {
	if l, ok := r.logs[id]; ok {
		clone := *l
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRunLogRepo) collect(match func(*domain.RunLog) bool) []domain.RunLog {
	var out []domain.RunLog
	for _, l := range r.logs {
		if match(l) {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (r *fakeRunLogRepo) GetByAthlete(_ context.Context, athleteID primitive.ObjectID) ([]domain.RunLog, error) {
	return r.collect(func(l *domain.RunLog) bool { return l.AthleteID == athleteID }), nil
}

func (r *fakeRunLogRepo) GetByAthleteAndDateRange(_ context.Context, athleteID primitive.ObjectID, from, to time.Time) ([]domain.RunLog, error) {
	return r.collect(func(l *domain.RunLog) bool {
		return l.AthleteID == athleteID && !l.Date.Before(from) && l.Date.Before(to)
	}), nil
}

func (r *fakeRunLogRepo) GetCompletingByWorkoutID(_ context.Context, workoutID primitive.ObjectID) (*domain.RunLog, error) {
	for _, l := range r.logs {
		if l.WorkoutID != nil && *l.WorkoutID == workoutID && l.Completed {
			clone := *l
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRunLogRepo) GetCompletedWorkoutIDs(_ context.Context, athleteID primitive.ObjectID, workoutIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	wanted := make(map[primitive.ObjectID]bool, len(workoutIDs))
	for _, id := range workoutIDs {
		wanted[id] = true
	}
	completed := make(map[primitive.ObjectID]bool)
	for _, l := range r.logs {
		if l.AthleteID == athleteID && l.Completed && l.WorkoutID != nil && wanted[*l.WorkoutID] {
			completed[*l.WorkoutID] = true
		}
	}
	return completed, nil
}

func (r *fakeRunLogRepo) ClearWorkoutRefs(_ context.Context, workoutIDs []primitive.ObjectID) error {
	cleared := make(map[primitive.ObjectID]bool, len(workoutIDs))
	for _, id := range workoutIDs {
		cleared[id] = true
	}
	for _, l := range r.logs {
		if l.WorkoutID != nil && cleared[*l.WorkoutID] {
			l.WorkoutID = nil
		}
	}
	return nil
}

func (r *fakeRunLogRepo) Delete(_ context.Context, id primitive.ObjectID, athleteID primitive.ObjectID) error {
	if l, ok := r.logs[id]; ok && l.AthleteID == athleteID {
		delete(r.logs, id)
		return nil
	}
	return repository.ErrNotFound
}

// --- adjustments ---

type fakeAdjustmentRepo struct {
	adjustments []domain.WeeklyAdjustment
}

func newFakeAdjustmentRepo() *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{}
}

func (r *fakeAdjustmentRepo) Create(_ context.Context, adjustment *domain.WeeklyAdjustment) (primitive.ObjectID, error) {
	adjustment.ID = primitive.NewObjectID()
	r.adjustments = append(r.adjustments, *adjustment)
	return adjustment.ID, nil
}

func (r *fakeAdjustmentRepo) GetByAthlete(_ context.Context, athleteID primitive.ObjectID) ([]domain.WeeklyAdjustment, error) {
	var out []domain.WeeklyAdjustment
	for _, a := range r.adjustments {
		if a.AthleteID == athleteID {
			out = append(out, a)
		}
	}
	return out, nil
}
