package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdjustmentType classifies the direction of an automatic volume change.
type AdjustmentType string

const (
	AdjustReduce   AdjustmentType = "reduce"
	AdjustMaintain AdjustmentType = "maintain"
	AdjustIncrease AdjustmentType = "increase"
)

// WeeklyAdjustment is an append-only audit record of an automatic volume
// change applied to future workouts. Maintain outcomes are not persisted
// since they change nothing.
type WeeklyAdjustment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AthleteID  primitive.ObjectID `bson:"athleteId" json:"athleteId"`
	PlanID     primitive.ObjectID `bson:"planId" json:"planId"`
	WeekNumber int                `bson:"weekNumber" json:"weekNumber"` // Week the adjustment targeted
	Type       AdjustmentType     `bson:"type" json:"type"`
	Reason     string             `bson:"reason" json:"reason"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
