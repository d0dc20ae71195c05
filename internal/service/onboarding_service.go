package service

import (
	"context"
	"errors"

	"pulsefit/server/internal/domain"
	"pulsefit/server/internal/repository"
)

// --- Error Definitions ---
var (
	ErrProfileNotFound = errors.New("onboarding profile not found")
)

// --- Service Interface ---
type OnboardingService interface {
	GetProfile(ctx context.Context, userID string) (*domain.OnboardingProfile, error)
	SaveProfile(ctx context.Context, profile *domain.OnboardingProfile) (*domain.OnboardingProfile, error)
}

// onboardingService implements the OnboardingService interface.
type onboardingService struct {
	onboardingRepo repository.OnboardingRepository
}

// NewOnboardingService creates a new instance of onboardingService.
func NewOnboardingService(onboardingRepo repository.OnboardingRepository) OnboardingService {
	return &onboardingService{onboardingRepo: onboardingRepo}
}

// GetProfile retrieves the user's onboarding profile.
func (s *onboardingService) GetProfile(ctx context.Context, userID string) (*domain.OnboardingProfile, error) {
	profile, err := s.onboardingRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// SaveProfile creates or updates the user's single live profile record.
func (s *onboardingService) SaveProfile(ctx context.Context, profile *domain.OnboardingProfile) (*domain.OnboardingProfile, error) {
	if profile.UserID == "" {
		return nil, errors.New("profile userID is required")
	}
	return s.onboardingRepo.Upsert(ctx, profile)
}
