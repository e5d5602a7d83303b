package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RunPhoto stores metadata about a photo an athlete attached to a run log.
// The actual image resides in S3; only the object key is kept here.
type RunPhoto struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RunLogID    primitive.ObjectID `bson:"runLogId" json:"runLogId"`
	AthleteID   primitive.ObjectID `bson:"athleteId" json:"athleteId"` // Denormalized
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"`       // Internal use only
	FileName    string             `bson:"fileName" json:"fileName"`
	ContentType string             `bson:"contentType" json:"contentType"`
	Size        int64              `bson:"size" json:"size"`
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
