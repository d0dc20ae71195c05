package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pulsefit/server/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate record")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with account data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	SetAvatarKey(ctx context.Context, id primitive.ObjectID, key string) error
}

// OnboardingRepository stores the per-user onboarding quiz profile.
// At most one live record exists per user.
type OnboardingRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.OnboardingProfile, error)
	Upsert(ctx context.Context, profile *domain.OnboardingProfile) (*domain.OnboardingProfile, error)
}

// PreferencesRepository stores saved diet preferences, one record per user.
type PreferencesRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.DietPreferences, error)
	Upsert(ctx context.Context, prefs *domain.DietPreferences) (*domain.DietPreferences, error)
}

// TrackerRepository stores workout records. Records are owner-scoped and
// there is no update-in-place.
type TrackerRepository interface {
	Create(ctx context.Context, record *domain.WorkoutRecord) (primitive.ObjectID, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.WorkoutRecord, error)
	Delete(ctx context.Context, id primitive.ObjectID, userID string) error
}

// CognitoUserRepository stores the identity-provider mirror records.
type CognitoUserRepository interface {
	UpsertByUsername(ctx context.Context, user *domain.CognitoUser) error
	SetEnabled(ctx context.Context, username string, enabled bool) error
	List(ctx context.Context) ([]domain.CognitoUser, error)
	DeleteByUsername(ctx context.Context, username string) error
}
