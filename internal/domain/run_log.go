package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RunLog records a run the athlete actually did, either against a scheduled
// workout, or freeform (WorkoutID nil, Unplanned true).
//
// A workout may be the target of at most one completing log. The log weakly
// references its workout: deleting the workout nulls the reference, it never
// deletes the log.
type RunLog struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	AthleteID       primitive.ObjectID  `bson:"athleteId" json:"athleteId"`
	WorkoutID       *primitive.ObjectID `bson:"workoutId,omitempty" json:"workoutId,omitempty"` // nil => unplanned run
	Date            time.Time           `bson:"date" json:"date"`
	Completed       bool                `bson:"completed" json:"completed"`
	DurationMinutes int                 `bson:"durationMinutes" json:"durationMinutes"` // Actual, not planned
	EffortLevel     int                 `bson:"effortLevel" json:"effortLevel"`         // 1-10
	PainLevel       int                 `bson:"painLevel" json:"painLevel"`             // 0-10
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Unplanned       bool                `bson:"unplanned" json:"unplanned"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
