package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutType tags the kind of training session.
type WorkoutType string

const (
	WorkoutEasy     WorkoutType = "easy"
	WorkoutTempo    WorkoutType = "tempo"
	WorkoutInterval WorkoutType = "interval"
	WorkoutLong     WorkoutType = "long"
)

// Intensity is a coarse effort tag on a workout.
type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
)

// Workout is one scheduled training session within a plan.
//
// Completed is never persisted: it is derived from the presence of a
// completing RunLog and filled in by the service layer at read time, so the
// stored record and the log can never drift apart.
type Workout struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID           primitive.ObjectID `bson:"planId" json:"planId"`
	AthleteID        primitive.ObjectID `bson:"athleteId" json:"athleteId"` // Denormalized
	Date             time.Time          `bson:"date" json:"date"`
	WeekNumber       int                `bson:"weekNumber" json:"weekNumber"` // 1-based; week 1 contains plan start
	Type             WorkoutType        `bson:"type" json:"type"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	DurationMinutes  int                `bson:"durationMinutes" json:"durationMinutes"`
	Intensity        Intensity          `bson:"intensity" json:"intensity"`
	TiredAlternative string             `bson:"tiredAlternative,omitempty" json:"tiredAlternative,omitempty"`
	IsKeyWorkout     bool               `bson:"isKeyWorkout" json:"isKeyWorkout"`
	IsLongRun        bool               `bson:"isLongRun" json:"isLongRun"`
	Completed        bool               `bson:"-" json:"completed"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
