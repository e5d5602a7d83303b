package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingPlan is the materialized workout calendar for one goal, spanning
// from the day the goal was created to race day. Exactly one plan exists per
// active goal; regeneration deletes and recreates it wholesale.
type TrainingPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GoalID    primitive.ObjectID `bson:"goalId" json:"goalId"`
	AthleteID primitive.ObjectID `bson:"athleteId" json:"athleteId"` // Denormalized for direct athlete queries
	StartDate time.Time          `bson:"startDate" json:"startDate"`
	EndDate   time.Time          `bson:"endDate" json:"endDate"` // Race day
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
