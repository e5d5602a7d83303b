package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/typedef77/Runny/internal/domain"
	"github.com/typedef77/Runny/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const adjustmentCollectionName = "weekly_adjustments"

// mongoAdjustmentRepository implements repository.AdjustmentRepository
type mongoAdjustmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAdjustmentRepository creates a new WeeklyAdjustment repository.
func NewMongoAdjustmentRepository(db *mongo.Database) repository.AdjustmentRepository {
	return &mongoAdjustmentRepository{
		collection: db.Collection(adjustmentCollectionName),
	}
}

// Create appends an adjustment audit row. Rows are never updated or deleted.
func (r *mongoAdjustmentRepository) Create(ctx context.Context, adjustment *domain.WeeklyAdjustment) (primitive.ObjectID, error) {
	if adjustment.AthleteID == primitive.NilObjectID || adjustment.PlanID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("adjustment requires athleteId and planId")
	}
	adjustment.ID = primitive.NewObjectID()
	adjustment.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, adjustment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted adjustment ID")
	}
	return insertedID, nil
}

// GetByAthlete retrieves an athlete's adjustment history, newest first.
func (r *mongoAdjustmentRepository) GetByAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.WeeklyAdjustment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"athleteId": athleteID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var adjustments []domain.WeeklyAdjustment
	if err = cursor.All(ctx, &adjustments); err != nil {
		return nil, err
	}
	return adjustments, nil
}

// EnsureAdjustmentIndexes creates necessary indexes. Call during startup.
func EnsureAdjustmentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "athleteId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "planId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
