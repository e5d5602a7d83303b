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

const runLogCollectionName = "run_logs"

// mongoRunLogRepository implements repository.RunLogRepository
type mongoRunLogRepository struct {
	collection *mongo.Collection
}

// NewMongoRunLogRepository creates a new RunLog repository.
func NewMongoRunLogRepository(db *mongo.Database) repository.RunLogRepository {
	return &mongoRunLogRepository{
		collection: db.Collection(runLogCollectionName),
	}
}

// Create inserts a new run log.
func (r *mongoRunLogRepository) Create(ctx context.Context, log *domain.RunLog) (primitive.ObjectID, error) {
	if log.AthleteID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("run log requires athleteId")
	}
	log.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	log.CreatedAt = now
	log.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted run log ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single run log by its ID.
func (r *mongoRunLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RunLog, error) {
	var log domain.RunLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *mongoRunLogRepository) find(ctx context.Context, filter bson.M) ([]domain.RunLog, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.RunLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// GetByAthlete retrieves all of an athlete's logs, newest first.
func (r *mongoRunLogRepository) GetByAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.RunLog, error) {
	return r.find(ctx, bson.M{"athleteId": athleteID})
}

// GetByAthleteAndDateRange retrieves an athlete's logs in [from, to),
// planned and unplanned alike.
func (r *mongoRunLogRepository) GetByAthleteAndDateRange(ctx context.Context, athleteID primitive.ObjectID, from, to time.Time) ([]domain.RunLog, error) {
	return r.find(ctx, bson.M{"athleteId": athleteID, "date": bson.M{"$gte": from, "$lt": to}})
}

// GetCompletingByWorkoutID retrieves the log that completed a workout, if any.
func (r *mongoRunLogRepository) GetCompletingByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) (*domain.RunLog, error) {
	var log domain.RunLog
	filter := bson.M{"workoutId": workoutID, "completed": true}
	err := r.collection.FindOne(ctx, filter).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// GetCompletedWorkoutIDs returns which of the given workouts have a
// completing log. This is the source of truth for the Workout.Completed
// view; no completion flag is stored on the workout itself.
func (r *mongoRunLogRepository) GetCompletedWorkoutIDs(ctx context.Context, athleteID primitive.ObjectID, workoutIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	completed := make(map[primitive.ObjectID]bool)
	if len(workoutIDs) == 0 {
		return completed, nil
	}
	filter := bson.M{
		"athleteId": athleteID,
		"workoutId": bson.M{"$in": workoutIDs},
		"completed": true,
	}
	logs, err := r.find(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, log := range logs {
		if log.WorkoutID != nil {
			completed[*log.WorkoutID] = true
		}
	}
	return completed, nil
}

// ClearWorkoutRefs nulls the workout reference on logs pointing at deleted
// workouts. The logs themselves survive; the reference is weak.
func (r *mongoRunLogRepository) ClearWorkoutRefs(ctx context.Context, workoutIDs []primitive.ObjectID) error {
	if len(workoutIDs) == 0 {
		return nil
	}
	filter := bson.M{"workoutId": bson.M{"$in": workoutIDs}}
	update := bson.M{
		"$unset": bson.M{"workoutId": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

// Delete removes a log owned by the athlete.
func (r *mongoRunLogRepository) Delete(ctx context.Context, id primitive.ObjectID, athleteID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "athleteId": athleteID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureRunLogIndexes creates necessary indexes. Call during startup.
func EnsureRunLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "athleteId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "workoutId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
