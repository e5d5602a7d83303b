package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/typedef77/Runny/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// monday is a fixed Monday used as "now" across plan tests.
var monday = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func newPlanFixture() (*fakeGoalRepo, *fakePlanRepo, *fakeWorkoutRepo, *fakeRunLogRepo, PlanService) {
	goals := newFakeGoalRepo()
	plans := newFakePlanRepo()
	workouts := newFakeWorkoutRepo()
	logs := newFakeRunLogRepo()
	svc := NewPlanService(goals, plans, workouts, logs, fakeTxRunner{})
	return goals, plans, workouts, logs, svc
}

func seedGoal(t *testing.T, goals *fakeGoalRepo, goal *domain.Goal) *domain.Goal {
	t.Helper()
	if _, err := goals.Create(context.Background(), goal); err != nil {
		t.Fatalf("seed goal: %v", err)
	}
	return goal
}

func tenWeekGoal(athleteID primitive.ObjectID) *domain.Goal {
	return &domain.Goal{
		AthleteID:         athleteID,
		RaceDistance:      domain.Race10K,
		RaceDate:          monday.AddDate(0, 0, 70),
		Experience:        domain.ExperienceIntermediate,
		CurrentFrequency:  3,
		LongestRecentRun:  45,
		PermittedDays:     []time.Weekday{time.Tuesday, time.Thursday, time.Saturday, time.Sunday},
		MaxWeekdayMinutes: 60,
		MaxWeekendMinutes: 180,
		IsActive:          true,
	}
}

func weeksByNumber(workouts []domain.Workout) map[int][]domain.Workout {
	weeks := make(map[int][]domain.Workout)
	for _, w := range workouts {
		weeks[w.WeekNumber] = append(weeks[w.WeekNumber], w)
	}
	return weeks
}

func TestGeneratePlanTenWeekIntermediate(t *testing.T) {
	ctx := context.Background()
	goals, plans, workoutRepo, _, svc := newPlanFixture()
	goal := seedGoal(t, goals, tenWeekGoal(primitive.NewObjectID()))

	planID, err := svc.GeneratePlan(ctx, goal, monday)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}

	plan, err := plans.GetByID(ctx, planID)
	if err != nil {
		t.Fatalf("plan not persisted: %v", err)
	}
	if !plan.StartDate.Equal(monday) {
		t.Errorf("plan start = %v, want %v", plan.StartDate, monday)
	}
	if !plan.EndDate.Equal(goal.RaceDate) {
		t.Errorf("plan end = %v, want race date %v", plan.EndDate, goal.RaceDate)
	}

	all, _ := workoutRepo.GetByPlanID(ctx, planID)
	weeks := weeksByNumber(all)
	if len(weeks) != 10 {
		t.Fatalf("got %d weeks, want 10", len(weeks))
	}

	for week := 1; week <= 10; week++ {
		var longRuns, intervals, tempos int
		for _, w := range weeks[week] {
			switch w.Type {
			case domain.WorkoutLong:
				longRuns++
			case domain.WorkoutInterval:
				intervals++
			case domain.WorkoutTempo:
				tempos++
			}
		}
		if longRuns != 1 {
			t.Errorf("week %d: %d long runs, want 1", week, longRuns)
		}
		// Intervals unlock for an intermediate only in the peak phase
		// (weeks 7-8 of a 10-week plan); tempo carries the other weeks.
		if week == 7 || week == 8 {
			if intervals != 1 {
				t.Errorf("week %d: %d intervals, want 1", week, intervals)
			}
		} else {
			if intervals != 0 {
				t.Errorf("week %d: unexpected interval session", week)
			}
			if tempos != 1 {
				t.Errorf("week %d: %d tempo runs, want 1", week, tempos)
			}
		}
	}

	// The long run claims the highest-numbered weekend permitted day.
	for _, w := range weeks[1] {
		if w.Type == domain.WorkoutLong {
			if w.Date.Weekday() != time.Saturday {
				t.Errorf("week 1 long run on %v, want Saturday", w.Date.Weekday())
			}
			wantDate := monday.AddDate(0, 0, 5)
			if !w.Date.Equal(wantDate) {
				t.Errorf("week 1 long run date = %v, want %v", w.Date, wantDate)
			}
		}
	}

	// Every workout lands on a permitted day.
	permitted := map[time.Weekday]bool{
		time.Tuesday: true, time.Thursday: true, time.Saturday: true, time.Sunday: true,
	}
	for _, w := range all {
		if !permitted[w.Date.Weekday()] {
			t.Errorf("workout on %v is not a permitted day", w.Date.Weekday())
		}
	}
}

func TestGeneratePlanBeginnerTwoDays(t *testing.T) {
	ctx := context.Background()
	goals, _, workoutRepo, _, svc := newPlanFixture()
	goal := seedGoal(t, goals, &domain.Goal{
		AthleteID:         primitive.NewObjectID(),
		RaceDistance:      domain.Race5K,
		RaceDate:          monday.AddDate(0, 0, 56), // 8 weeks out
		Experience:        domain.ExperienceBeginner,
		CurrentFrequency:  2,
		LongestRecentRun:  20,
		PermittedDays:     []time.Weekday{time.Monday, time.Wednesday},
		MaxWeekdayMinutes: 45,
		MaxWeekendMinutes: 90,
		IsActive:          true,
	})

	planID, err := svc.GeneratePlan(ctx, goal, monday)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}

	all, _ := workoutRepo.GetByPlanID(ctx, planID)
	for week, ws := range weeksByNumber(all) {
		if len(ws) != 2 {
			t.Errorf("week %d: %d workouts, want 2", week, len(ws))
		}
		for _, w := range ws {
			if w.Type != domain.WorkoutEasy && w.Type != domain.WorkoutLong {
				t.Errorf("week %d: beginner got a %s session", week, w.Type)
			}
		}
	}
}

func TestGeneratePlanRaceThisWeek(t *testing.T) {
	ctx := context.Background()
	goals, _, workoutRepo, _, svc := newPlanFixture()
	goal := seedGoal(t, goals, &domain.Goal{
		AthleteID:         primitive.NewObjectID(),
		RaceDistance:      domain.Race5K,
		RaceDate:          monday.AddDate(0, 0, 3),
		Experience:        domain.ExperienceBeginner,
		CurrentFrequency:  2,
		LongestRecentRun:  20,
		PermittedDays:     []time.Weekday{time.Monday, time.Wednesday},
		MaxWeekdayMinutes: 45,
		MaxWeekendMinutes: 90,
		IsActive:          true,
	})

	planID, err := svc.GeneratePlan(ctx, goal, monday)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	all, _ := workoutRepo.GetByPlanID(ctx, planID)
	for _, w := range all {
		if w.WeekNumber != 1 {
			t.Fatalf("race under a week away produced week %d", w.WeekNumber)
		}
	}
	if len(all) == 0 {
		t.Fatal("expected a single minimal week, got none")
	}
}

func TestRegeneratePlanIsDestructive(t *testing.T) {
	ctx := context.Background()
	goals, plans, workoutRepo, logRepo, svc := newPlanFixture()
	athleteID := primitive.NewObjectID()
	goal := seedGoal(t, goals, tenWeekGoal(athleteID))

	oldPlanID, err := svc.GeneratePlan(ctx, goal, monday)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	oldWorkouts, _ := workoutRepo.GetByPlanID(ctx, oldPlanID)

	// A run log completing one of the old workouts must survive regeneration
	// with its workout reference nulled.
	completedID := oldWorkouts[0].ID
	log := &domain.RunLog{
		AthleteID:       athleteID,
		WorkoutID:       &completedID,
		Date:            oldWorkouts[0].Date,
		Completed:       true,
		DurationMinutes: 30,
		EffortLevel:     5,
	}
	logID, _ := logRepo.Create(ctx, log)

	newPlanID, err := svc.RegeneratePlan(ctx, goal.ID, athleteID, monday)
	if err != nil {
		t.Fatalf("RegeneratePlan: %v", err)
	}
	if newPlanID == oldPlanID {
		t.Fatal("regeneration reused the old plan ID")
	}
	if _, err := plans.GetByID(ctx, oldPlanID); err == nil {
		t.Error("old plan still exists after regeneration")
	}
	for _, w := range oldWorkouts {
		if _, err := workoutRepo.GetByID(ctx, w.ID); err == nil {
			t.Errorf("old workout %s survived regeneration", w.ID.Hex())
		}
	}

	kept, err := logRepo.GetByID(ctx, logID)
	if err != nil {
		t.Fatalf("run log was deleted by regeneration: %v", err)
	}
	if kept.WorkoutID != nil {
		t.Error("run log still references a deleted workout")
	}

	newWorkouts, _ := workoutRepo.GetByPlanID(ctx, newPlanID)
	if len(newWorkouts) == 0 {
		t.Fatal("regenerated plan has no workouts")
	}
}

func TestRegeneratePlanAccessDenied(t *testing.T) {
	ctx := context.Background()
	goals, _, _, _, svc := newPlanFixture()
	goal := seedGoal(t, goals, tenWeekGoal(primitive.NewObjectID()))

	_, err := svc.RegeneratePlan(ctx, goal.ID, primitive.NewObjectID(), monday)
	if !errors.Is(err, ErrGoalAccessDenied) {
		t.Fatalf("got %v, want ErrGoalAccessDenied", err)
	}
}

func TestRescheduleWeekMovesContentIntact(t *testing.T) {
	ctx := context.Background()
	_, plans, workoutRepo, _, svc := newPlanFixture()
	athleteID := primitive.NewObjectID()

	plan := &domain.TrainingPlan{AthleteID: athleteID, GoalID: primitive.NewObjectID(), StartDate: monday}
	planID, _ := plans.Create(ctx, plan)

	week := []domain.Workout{
		{PlanID: planID, AthleteID: athleteID, Date: monday, WeekNumber: 1,
			Type: domain.WorkoutEasy, Title: "Easy Run", DurationMinutes: 30, Intensity: domain.IntensityLow},
		{PlanID: planID, AthleteID: athleteID, Date: monday.AddDate(0, 0, 1), WeekNumber: 1,
			Type: domain.WorkoutTempo, Title: "Tempo Run", DurationMinutes: 25,
			Intensity: domain.IntensityModerate, IsKeyWorkout: true, TiredAlternative: "Run it easy."},
		{PlanID: planID, AthleteID: athleteID, Date: monday.AddDate(0, 0, 3), WeekNumber: 1,
			Type: domain.WorkoutEasy, Title: "Easy Run", DurationMinutes: 30, Intensity: domain.IntensityLow},
		{PlanID: planID, AthleteID: athleteID, Date: monday.AddDate(0, 0, 5), WeekNumber: 1,
			Type: domain.WorkoutLong, Title: "Long Run", DurationMinutes: 50,
			Intensity: domain.IntensityLow, IsKeyWorkout: true, IsLongRun: true},
	}
	if err := workoutRepo.CreateMany(ctx, week); err != nil {
		t.Fatalf("seed week: %v", err)
	}

	err := svc.RescheduleWeek(ctx, athleteID, planID, 1, []time.Weekday{time.Sunday, time.Wednesday})
	if err != nil {
		t.Fatalf("RescheduleWeek: %v", err)
	}

	after, _ := workoutRepo.GetByPlanAndWeek(ctx, planID, 1)
	if len(after) != 2 {
		t.Fatalf("got %d workouts after reschedule, want 2 (easy runs dropped)", len(after))
	}

	byType := make(map[domain.WorkoutType]domain.Workout)
	for _, w := range after {
		byType[w.Type] = w
	}

	long, ok := byType[domain.WorkoutLong]
	if !ok {
		t.Fatal("long run missing after reschedule")
	}
	if long.Date.Weekday() != time.Sunday {
		t.Errorf("long run on %v, want Sunday", long.Date.Weekday())
	}
	if long.DurationMinutes != 50 || long.Title != "Long Run" || !long.IsLongRun {
		t.Errorf("long run content changed: %+v", long)
	}

	tempo, ok := byType[domain.WorkoutTempo]
	if !ok {
		t.Fatal("tempo run missing after reschedule")
	}
	if tempo.Date.Weekday() != time.Wednesday {
		t.Errorf("tempo run on %v, want Wednesday", tempo.Date.Weekday())
	}
	if tempo.DurationMinutes != 25 || tempo.TiredAlternative != "Run it easy." {
		t.Errorf("tempo run content changed: %+v", tempo)
	}

	// Dates stay within the same calendar week.
	for _, w := range after {
		if w.Date.Before(monday) || !w.Date.Before(monday.AddDate(0, 0, 7)) {
			t.Errorf("workout moved out of its week: %v", w.Date)
		}
	}
}

func TestRescheduleWeekClearsRunLogRefs(t *testing.T) {
	ctx := context.Background()
	_, plans, workoutRepo, logRepo, svc := newPlanFixture()
	athleteID := primitive.NewObjectID()

	plan := &domain.TrainingPlan{AthleteID: athleteID, GoalID: primitive.NewObjectID(), StartDate: monday}
	planID, _ := plans.Create(ctx, plan)

	week := []domain.Workout{
		{PlanID: planID, AthleteID: athleteID, Date: monday.AddDate(0, 0, 1), WeekNumber: 1,
			Type: domain.WorkoutTempo, Title: "Tempo Run", DurationMinutes: 25,
			Intensity: domain.IntensityModerate, IsKeyWorkout: true},
		{PlanID: planID, AthleteID: athleteID, Date: monday.AddDate(0, 0, 5), WeekNumber: 1,
			Type: domain.WorkoutLong, Title: "Long Run", DurationMinutes: 50,
			Intensity: domain.IntensityLow, IsKeyWorkout: true, IsLongRun: true},
	}
	if err := workoutRepo.CreateMany(ctx, week); err != nil {
		t.Fatalf("seed week: %v", err)
	}

	// The tempo run was already completed before the week got rescheduled.
	completedID := week[0].ID
	logID, _ := logRepo.Create(ctx, &domain.RunLog{
		AthleteID:       athleteID,
		WorkoutID:       &completedID,
		Date:            week[0].Date,
		Completed:       true,
		DurationMinutes: 25,
		EffortLevel:     7,
	})

	err := svc.RescheduleWeek(ctx, athleteID, planID, 1, []time.Weekday{time.Wednesday, time.Sunday})
	if err != nil {
		t.Fatalf("RescheduleWeek: %v", err)
	}

	// The log survives but must not point at the deleted row.
	kept, err := logRepo.GetByID(ctx, logID)
	if err != nil {
		t.Fatalf("run log was deleted by reschedule: %v", err)
	}
	if kept.WorkoutID != nil {
		t.Errorf("run log still references a deleted workout %s", kept.WorkoutID.Hex())
	}

	// The original rows are gone and the replacements carry fresh IDs.
	for _, w := range week {
		if _, err := workoutRepo.GetByID(ctx, w.ID); err == nil {
			t.Errorf("original workout %s survived reschedule", w.ID.Hex())
		}
	}
	after, _ := workoutRepo.GetByPlanAndWeek(ctx, planID, 1)
	if len(after) != 2 {
		t.Fatalf("got %d workouts after reschedule, want 2", len(after))
	}
}

func TestRescheduleEmptyWeekIsNoop(t *testing.T) {
	ctx := context.Background()
	_, plans, _, _, svc := newPlanFixture()
	athleteID := primitive.NewObjectID()
	planID, _ := plans.Create(ctx, &domain.TrainingPlan{AthleteID: athleteID, StartDate: monday})

	err := svc.RescheduleWeek(ctx, athleteID, planID, 4, []time.Weekday{time.Monday, time.Friday})
	if err != nil {
		t.Fatalf("rescheduling an empty week should be a no-op, got %v", err)
	}
}

func TestRescheduleWeekAccessDenied(t *testing.T) {
	ctx := context.Background()
	_, plans, _, _, svc := newPlanFixture()
	planID, _ := plans.Create(ctx, &domain.TrainingPlan{AthleteID: primitive.NewObjectID(), StartDate: monday})

	err := svc.RescheduleWeek(ctx, primitive.NewObjectID(), planID, 1, []time.Weekday{time.Monday, time.Friday})
	if !errors.Is(err, ErrPlanAccessDenied) {
		t.Fatalf("got %v, want ErrPlanAccessDenied", err)
	}
}

func TestGetActivePlanComputesCompletion(t *testing.T) {
	ctx := context.Background()
	goals, _, workoutRepo, logRepo, svc := newPlanFixture()
	athleteID := primitive.NewObjectID()
	goal := seedGoal(t, goals, tenWeekGoal(athleteID))

	planID, err := svc.GeneratePlan(ctx, goal, monday)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	all, _ := workoutRepo.GetByPlanID(ctx, planID)
	doneID := all[0].ID
	logRepo.Create(ctx, &domain.RunLog{
		AthleteID: athleteID,
		WorkoutID: &doneID,
		Date:      all[0].Date,
		Completed: true,
	})

	plan, workouts, err := svc.GetActivePlan(ctx, athleteID)
	if err != nil {
		t.Fatalf("GetActivePlan: %v", err)
	}
	if plan.ID != planID {
		t.Fatalf("got plan %s, want %s", plan.ID.Hex(), planID.Hex())
	}
	var completedCount int
	for _, w := range workouts {
		if w.Completed {
			completedCount++
			if w.ID != doneID {
				t.Errorf("workout %s marked completed without a log", w.ID.Hex())
			}
		}
	}
	if completedCount != 1 {
		t.Errorf("got %d completed workouts, want 1", completedCount)
	}
}

func TestGetActivePlanNoGoal(t *testing.T) {
	ctx := context.Background()
	_, _, _, _, svc := newPlanFixture()

	_, _, err := svc.GetActivePlan(ctx, primitive.NewObjectID())
	if !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("got %v, want ErrGoalNotFound", err)
	}
}
