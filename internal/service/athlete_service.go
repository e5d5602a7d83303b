package service

import (
	"context"
	"errors"

	"github.com/typedef77/Runny/internal/domain"
	"github.com/typedef77/Runny/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrAthleteNotFound = errors.New("athlete not found")
	ErrSelfFollow      = errors.New("cannot follow yourself")
)

// --- Service Interface ---
type AthleteService interface {
	GetProfile(ctx context.Context, athleteID primitive.ObjectID) (*domain.User, error)
	Follow(ctx context.Context, athleteID, targetID primitive.ObjectID) error
	Unfollow(ctx context.Context, athleteID, targetID primitive.ObjectID) error
	GetFollowing(ctx context.Context, athleteID primitive.ObjectID) ([]domain.User, error)
}

// --- Service Implementation ---

type athleteService struct {
	userRepo repository.UserRepository
}

// NewAthleteService creates a new instance of athleteService.
func NewAthleteService(userRepo repository.UserRepository) AthleteService {
	return &athleteService{userRepo: userRepo}
}

func (s *athleteService) GetProfile(ctx context.Context, athleteID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *athleteService) Follow(ctx context.Context, athleteID, targetID primitive.ObjectID) error {
	if athleteID == targetID {
		return ErrSelfFollow
	}
	// Verify the target exists before linking.
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAthleteNotFound
		}
		return err
	}
	return s.userRepo.AddFollowing(ctx, athleteID, targetID)
}

func (s *athleteService) Unfollow(ctx context.Context, athleteID, targetID primitive.ObjectID) error {
	return s.userRepo.RemoveFollowing(ctx, athleteID, targetID)
}

func (s *athleteService) GetFollowing(ctx context.Context, athleteID primitive.ObjectID) ([]domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}
	following := make([]domain.User, 0, len(user.FollowingIDs))
	for _, id := range user.FollowingIDs {
		followed, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue // Deleted account; skip silently
			}
			return nil, err
		}
		followed.PasswordHash = ""
		following = append(following, *followed)
	}
	return following, nil
}
