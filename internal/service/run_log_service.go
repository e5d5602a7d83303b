package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/typedef77/Runny/internal/domain"
	"github.com/typedef77/Runny/internal/repository"
	"github.com/typedef77/Runny/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound         = errors.New("workout not found")
	ErrWorkoutAccessDenied     = errors.New("access denied to this workout")
	ErrWorkoutAlreadyCompleted = errors.New("workout already has a completing run log")
	ErrRunLogNotFound          = errors.New("run log not found")
	ErrInvalidEffortLevel      = errors.New("effort level must be between 1 and 10")
	ErrInvalidPainLevel        = errors.New("pain level must be between 0 and 10")
	ErrPhotoNotFound           = errors.New("no photo attached to this run")
)

// RunLogInput carries the fields an athlete supplies when logging a run.
type RunLogInput struct {
	WorkoutID       *primitive.ObjectID
	Date            time.Time
	Completed       bool
	DurationMinutes int
	EffortLevel     int
	PainLevel       int
	Notes           string
}

// --- Service Interface ---
type RunLogService interface {
	// LogRun records a run. A nil workout reference marks it unplanned; a
	// set one links it to the scheduled workout, completing it when the
	// completed flag is set. At most one completing log per workout.
	LogRun(ctx context.Context, athleteID primitive.ObjectID, input RunLogInput) (*domain.RunLog, error)

	// DeleteRun removes a log. Since workout completion is derived from
	// logs, the linked workout reads as incomplete again automatically.
	DeleteRun(ctx context.Context, athleteID, logID primitive.ObjectID) error

	// GetRuns lists the athlete's logs, newest first.
	GetRuns(ctx context.Context, athleteID primitive.ObjectID) ([]domain.RunLog, error)

	// RequestPhotoUpload reserves an S3 object key for a run photo and
	// returns a presigned PUT URL the client uploads to directly.
	RequestPhotoUpload(ctx context.Context, athleteID, logID primitive.ObjectID, fileName, contentType string, size int64) (string, *domain.RunPhoto, error)

	// GetPhotoURL returns a presigned GET URL for the run's photo.
	GetPhotoURL(ctx context.Context, athleteID, logID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

type runLogService struct {
	runLogRepo  repository.RunLogRepository
	workoutRepo repository.WorkoutRepository
	photoRepo   repository.RunPhotoRepository
	fileStorage storage.FileStorage
}

// NewRunLogService creates a new instance of runLogService.
func NewRunLogService(
	runLogRepo repository.RunLogRepository,
	workoutRepo repository.WorkoutRepository,
	photoRepo repository.RunPhotoRepository,
	fileStorage storage.FileStorage,
) RunLogService {
	return &runLogService{
		runLogRepo:  runLogRepo,
		workoutRepo: workoutRepo,
		photoRepo:   photoRepo,
		fileStorage: fileStorage,
	}
}

func (s *runLogService) LogRun(ctx context.Context, athleteID primitive.ObjectID, input RunLogInput) (*domain.RunLog, error) {
	if input.EffortLevel < 1 || input.EffortLevel > 10 {
		return nil, ErrInvalidEffortLevel
	}
	if input.PainLevel < 0 || input.PainLevel > 10 {
		return nil, ErrInvalidPainLevel
	}

	log := &domain.RunLog{
		AthleteID:       athleteID,
		WorkoutID:       input.WorkoutID,
		Date:            input.Date,
		Completed:       input.Completed,
		DurationMinutes: input.DurationMinutes,
		EffortLevel:     input.EffortLevel,
		PainLevel:       input.PainLevel,
		Notes:           input.Notes,
		Unplanned:       input.WorkoutID == nil,
	}

	if input.WorkoutID != nil {
		workout, err := s.workoutRepo.GetByID(ctx, *input.WorkoutID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrWorkoutNotFound
			}
			return nil, err
		}
		if workout.AthleteID != athleteID {
			return nil, ErrWorkoutAccessDenied
		}
		if input.Completed {
			_, err := s.runLogRepo.GetCompletingByWorkoutID(ctx, workout.ID)
			if err == nil {
				return nil, ErrWorkoutAlreadyCompleted
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
		}
	}

	logID, err := s.runLogRepo.Create(ctx, log)
	if err != nil {
		return nil, err
	}
	log.ID = logID
	return log, nil
}

func (s *runLogService) DeleteRun(ctx context.Context, athleteID, logID primitive.ObjectID) error {
	err := s.runLogRepo.Delete(ctx, logID, athleteID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRunLogNotFound
	}
	return err
}

func (s *runLogService) GetRuns(ctx context.Context, athleteID primitive.ObjectID) ([]domain.RunLog, error) {
	return s.runLogRepo.GetByAthlete(ctx, athleteID)
}

// === Run Photos ===

func (s *runLogService) RequestPhotoUpload(ctx context.Context, athleteID, logID primitive.ObjectID, fileName, contentType string, size int64) (string, *domain.RunPhoto, error) {
	log, err := s.runLogRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrRunLogNotFound
		}
		return "", nil, err
	}
	if log.AthleteID != athleteID {
		return "", nil, ErrRunLogNotFound // Don't leak other athletes' log IDs
	}

	objectKey := fmt.Sprintf("run-photos/%s/%s-%s", athleteID.Hex(), uuid.NewString(), fileName)
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", nil, err
	}

	photo := &domain.RunPhoto{
		RunLogID:    logID,
		AthleteID:   athleteID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	}
	photoID, err := s.photoRepo.Create(ctx, photo)
	if err != nil {
		return "", nil, err
	}
	photo.ID = photoID
	return uploadURL, photo, nil
}

func (s *runLogService) GetPhotoURL(ctx context.Context, athleteID, logID primitive.ObjectID) (string, error) {
	photo, err := s.photoRepo.GetByRunLogID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrPhotoNotFound
		}
		return "", err
	}
	if photo.AthleteID != athleteID {
		return "", ErrPhotoNotFound
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, photo.S3ObjectKey, storage.DefaultPresignedURLExpiry)
}
