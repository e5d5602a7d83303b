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

const runPhotoCollectionName = "run_photos"

// mongoRunPhotoRepository implements repository.RunPhotoRepository
type mongoRunPhotoRepository struct {
	collection *mongo.Collection
}

// NewMongoRunPhotoRepository creates a new RunPhoto repository.
func NewMongoRunPhotoRepository(db *mongo.Database) repository.RunPhotoRepository {
	return &mongoRunPhotoRepository{
		collection: db.Collection(runPhotoCollectionName),
	}
}

// Create inserts photo metadata after the client has uploaded to S3.
func (r *mongoRunPhotoRepository) Create(ctx context.Context, photo *domain.RunPhoto) (primitive.ObjectID, error) {
	if photo.RunLogID == primitive.NilObjectID || photo.AthleteID == primitive.NilObjectID || photo.S3ObjectKey == "" {
		return primitive.NilObjectID, errors.New("photo requires runLogId, athleteId, and s3ObjectKey")
	}
	photo.ID = primitive.NewObjectID()
	photo.UploadedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, photo)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted photo ID")
	}
	return insertedID, nil
}

// GetByID retrieves photo metadata by its ID.
func (r *mongoRunPhotoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RunPhoto, error) {
	var photo domain.RunPhoto
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&photo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &photo, nil
}

// GetByRunLogID retrieves the photo attached to a run log, if any.
func (r *mongoRunPhotoRepository) GetByRunLogID(ctx context.Context, runLogID primitive.ObjectID) (*domain.RunPhoto, error) {
	var photo domain.RunPhoto
	err := r.collection.FindOne(ctx, bson.M{"runLogId": runLogID}).Decode(&photo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &photo, nil
}

// EnsureRunPhotoIndexes creates necessary indexes. Call during startup.
func EnsureRunPhotoIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "runLogId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
