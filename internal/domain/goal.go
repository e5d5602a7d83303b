package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RaceDistance enumerates the race targets a goal can train for.
type RaceDistance string

const (
	Race5K       RaceDistance = "5k"
	Race10K      RaceDistance = "10k"
	RaceHalf     RaceDistance = "half"
	RaceMarathon RaceDistance = "marathon"
)

// ValidRaceDistance reports whether d is one of the supported race distances.
func ValidRaceDistance(d RaceDistance) bool {
	switch d {
	case Race5K, Race10K, RaceHalf, RaceMarathon:
		return true
	}
	return false
}

// ExperienceLevel enumerates the athlete's self-reported running background.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// ValidExperienceLevel reports whether e is a supported experience level.
func ValidExperienceLevel(e ExperienceLevel) bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

// Goal is an athlete's current training objective. At most one goal is
// active per athlete; creating a new goal deactivates the prior one.
type Goal struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AthleteID         primitive.ObjectID `bson:"athleteId" json:"athleteId"`
	RaceDistance      RaceDistance       `bson:"raceDistance" json:"raceDistance"`
	RaceDate          time.Time          `bson:"raceDate" json:"raceDate"`
	TargetTime        *string            `bson:"targetTime,omitempty" json:"targetTime,omitempty"` // e.g. "45:00", optional
	Experience        ExperienceLevel    `bson:"experience" json:"experience"`
	CurrentFrequency  int                `bson:"currentFrequency" json:"currentFrequency"` // runs per week right now
	LongestRecentRun  int                `bson:"longestRecentRun" json:"longestRecentRun"` // minutes
	PermittedDays     []time.Weekday     `bson:"permittedDays" json:"permittedDays"`       // >= 2, unordered
	MaxWeekdayMinutes int                `bson:"maxWeekdayMinutes" json:"maxWeekdayMinutes"`
	MaxWeekendMinutes int                `bson:"maxWeekendMinutes" json:"maxWeekendMinutes"`
	IsActive          bool               `bson:"isActive" json:"isActive"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
