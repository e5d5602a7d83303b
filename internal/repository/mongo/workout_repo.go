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

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// CreateMany bulk-inserts a batch of workouts in one write. Plan generation
// produces dozens of rows; inserting them individually is wasteful.
func (r *mongoWorkoutRepository) CreateMany(ctx context.Context, workouts []domain.Workout) error {
	if len(workouts) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, len(workouts))
	for i := range workouts {
		if workouts[i].PlanID == primitive.NilObjectID || workouts[i].AthleteID == primitive.NilObjectID {
			return errors.New("workout requires planId and athleteId")
		}
		if workouts[i].ID == primitive.NilObjectID {
			workouts[i].ID = primitive.NewObjectID()
		}
		workouts[i].CreatedAt = now
		workouts[i].UpdatedAt = now
		docs[i] = workouts[i]
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *mongoWorkoutRepository) find(ctx context.Context, filter bson.M) ([]domain.Workout, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workouts []domain.Workout
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetByPlanID retrieves all workouts for a plan, sorted by date.
func (r *mongoWorkoutRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Workout, error) {
	return r.find(ctx, bson.M{"planId": planID})
}

// GetByPlanAndWeek retrieves one week's workouts within a plan.
func (r *mongoWorkoutRepository) GetByPlanAndWeek(ctx context.Context, planID primitive.ObjectID, weekNumber int) ([]domain.Workout, error) {
	return r.find(ctx, bson.M{"planId": planID, "weekNumber": weekNumber})
}

// GetByPlanFromDate retrieves a plan's workouts dated on or after from.
func (r *mongoWorkoutRepository) GetByPlanFromDate(ctx context.Context, planID primitive.ObjectID, from time.Time) ([]domain.Workout, error) {
	return r.find(ctx, bson.M{"planId": planID, "date": bson.M{"$gte": from}})
}

// GetByAthleteAndDateRange retrieves the athlete's workouts in [from, to).
func (r *mongoWorkoutRepository) GetByAthleteAndDateRange(ctx context.Context, athleteID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error) {
	return r.find(ctx, bson.M{"athleteId": athleteID, "date": bson.M{"$gte": from, "$lt": to}})
}

// UpdateDuration rewrites one workout's planned duration in place.
func (r *mongoWorkoutRepository) UpdateDuration(ctx context.Context, id primitive.ObjectID, durationMinutes int) error {
	update := bson.M{
		"$set": bson.M{
			"durationMinutes": durationMinutes,
			"updatedAt":       time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByIDs removes a specific set of workout rows.
func (r *mongoWorkoutRepository) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

// DeleteByPlanID removes every workout in a plan and returns the deleted IDs
// so callers can null out run-log references.
func (r *mongoWorkoutRepository) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) ([]primitive.ObjectID, error) {
	workouts, err := r.GetByPlanID(ctx, planID)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(workouts))
	for i, w := range workouts {
		ids[i] = w.ID
	}
	if _, err := r.collection.DeleteMany(ctx, bson.M{"planId": planID}); err != nil {
		return nil, err
	}
	return ids, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "weekNumber", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "athleteId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
