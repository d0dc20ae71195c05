package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pulsefit/server/internal/cache"
	"pulsefit/server/internal/domain"
	"pulsefit/server/internal/repository"
	"pulsefit/server/internal/storage"
)

// --- Error Definitions ---
var (
	ErrUserNotFound = errors.New("user not found")
	ErrNoAvatar     = errors.New("user has no avatar")
)

// Presigned avatar download URLs are memoized just short of their expiry.
const avatarURLCacheTTL = 10 * time.Minute

// --- Service Interface ---
type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	// RequestAvatarUpload allocates an object key for the user's avatar and
	// returns a presigned PUT URL the client uploads against.
	RequestAvatarUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (uploadURL string, err error)
	// AvatarURL returns a presigned GET URL for the user's stored avatar.
	AvatarURL(ctx context.Context, userID primitive.ObjectID) (string, error)
}

// userService implements the UserService interface.
type userService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
	urlCache    cache.Cache
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, fileStorage storage.FileStorage, urlCache cache.Cache) UserService {
	return &userService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
		urlCache:    urlCache,
	}
}

// GetProfile returns the account record without the password hash.
func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// RequestAvatarUpload stores a fresh object key on the user and presigns a
// PUT URL for it. A previous avatar object is left behind for storage-side
// lifecycle rules to clean up.
func (s *userService) RequestAvatarUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}

	objectKey := fmt.Sprintf("avatars/%s/%s", userID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.SetAvatarKey(ctx, userID, objectKey); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	// The old presigned download URL no longer matches the stored key.
	_ = s.urlCache.Delete(ctx, avatarURLKey(userID))

	return uploadURL, nil
}

// AvatarURL resolves the stored avatar key to a presigned download URL,
// memoized per user. Cache failures fall through to a fresh presign.
func (s *userService) AvatarURL(ctx context.Context, userID primitive.ObjectID) (string, error) {
	key := avatarURLKey(userID)
	if cached, ok, err := s.urlCache.Get(ctx, key); err == nil && ok {
		return cached, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if user.AvatarKey == "" {
		return "", ErrNoAvatar
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.AvatarKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", err
	}
	_ = s.urlCache.Set(ctx, key, downloadURL, avatarURLCacheTTL)
	return downloadURL, nil
}

func avatarURLKey(userID primitive.ObjectID) string {
	return "avatar-url:" + userID.Hex()
}
