package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pulsefit/server/internal/domain"
	"pulsefit/server/internal/repository"
)

// --- Error Definitions ---
var (
	ErrRecordNotFound       = errors.New("workout record not found")
	ErrInvalidWorkoutType   = errors.New("workout type must be cardio or strength")
	ErrInvalidWorkoutDetail = errors.New("cardio records need a duration, strength records need sets and reps")
	ErrCaloriesRequired     = errors.New("calories burned is required")
)

// --- Service Interface ---
type TrackerService interface {
	LogWorkout(ctx context.Context, record *domain.WorkoutRecord) (*domain.WorkoutRecord, error)
	History(ctx context.Context, userID string) ([]domain.WorkoutRecord, error)
	DeleteWorkout(ctx context.Context, userID string, recordID primitive.ObjectID) error
}

// trackerService implements the TrackerService interface.
type trackerService struct {
	trackerRepo repository.TrackerRepository
}

// NewTrackerService creates a new instance of trackerService.
func NewTrackerService(trackerRepo repository.TrackerRepository) TrackerService {
	return &trackerService{trackerRepo: trackerRepo}
}

// LogWorkout validates and stores one workout record. Records are immutable
// once logged; corrections are delete-and-recreate.
func (s *trackerService) LogWorkout(ctx context.Context, record *domain.WorkoutRecord) (*domain.WorkoutRecord, error) {
	if record.UserID == "" || record.Workout == "" {
		return nil, errors.New("userID and workout name are required")
	}
	if record.Calories <= 0 {
		return nil, ErrCaloriesRequired
	}

	switch record.Type {
	case domain.WorkoutCardio:
		if record.Duration == nil || *record.Duration <= 0 {
			return nil, ErrInvalidWorkoutDetail
		}
		record.Sets, record.Reps = nil, nil
	case domain.WorkoutStrength:
		if record.Sets == nil || *record.Sets <= 0 || record.Reps == nil || *record.Reps <= 0 {
			return nil, ErrInvalidWorkoutDetail
		}
		record.Duration = nil
	default:
		return nil, ErrInvalidWorkoutType
	}

	if record.Date.IsZero() {
		record.Date = time.Now().UTC()
	}

	recordID, err := s.trackerRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = recordID
	return record, nil
}

// History returns the user's workout records, newest first.
func (s *trackerService) History(ctx context.Context, userID string) ([]domain.WorkoutRecord, error) {
	return s.trackerRepo.ListByUserID(ctx, userID)
}

// DeleteWorkout removes one of the user's own records.
func (s *trackerService) DeleteWorkout(ctx context.Context, userID string, recordID primitive.ObjectID) error {
	err := s.trackerRepo.Delete(ctx, recordID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRecordNotFound
	}
	return err
}
