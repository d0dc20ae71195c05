package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"pulsefit/server/internal/domain"
	"pulsefit/server/internal/repository"
)

// Preference defaults used until onboarding data or a saved record exists.
// These mirror the quiz form's initial values.
func defaultPreferences(userID string) domain.DietPreferences {
	return domain.DietPreferences{
		UserID:             userID,
		DietType:           "none",
		CaloriesPerDay:     2000,
		ProteinGramsPerDay: 150,
		CarbGramsPerDay:    200,
		FatGramsPerDay:     65,
		MaxReadyTime:       60,
		MealsPerDay:        3,
	}
}

// PlanGenerator is the upstream pipeline the service orchestrates. The
// spoonacular client satisfies it; tests substitute fakes.
type PlanGenerator interface {
	GenerateMealPlan(ctx context.Context, prefs domain.DietPreferences, daysCount int) ([]domain.MealPlanDay, error)
}

// --- Service Interface ---
type MealPlanService interface {
	// Flow returns the user's current plan-flow state, resolving
	// preferences when no session exists yet.
	Flow(ctx context.Context, userID string) (domain.PlanFlow, error)
	// Targets derives the user's daily nutrition targets from onboarding data.
	Targets(ctx context.Context, userID string) (domain.NutritionTargets, error)
	// Generate runs the full pipeline and, on success, advances the flow
	// to the plan step. Any failure leaves the flow at quiz with prior
	// preferences untouched.
	Generate(ctx context.Context, userID string, edits *domain.DietPreferences, daysCount int) (domain.PlanFlow, error)
	// SavePreferences persists the finalized preference record for reuse.
	SavePreferences(ctx context.Context, userID string, prefs domain.DietPreferences) (*domain.DietPreferences, error)
	// Adjust returns the flow to the quiz step.
	Adjust(ctx context.Context, userID string) (domain.PlanFlow, error)
}

// mealPlanService implements the MealPlanService interface. Per-user flow
// state lives in an in-memory session map; concurrent generations are not
// cancelled, they simply race and the last write wins.
type mealPlanService struct {
	onboardingRepo repository.OnboardingRepository
	prefsRepo      repository.PreferencesRepository
	generator      PlanGenerator
	logger         zerolog.Logger

	mu       sync.Mutex
	sessions map[string]domain.PlanFlow
}

// NewMealPlanService creates a new instance of mealPlanService.
func NewMealPlanService(
	onboardingRepo repository.OnboardingRepository,
	prefsRepo repository.PreferencesRepository,
	generator PlanGenerator,
	logger zerolog.Logger,
) MealPlanService {
	return &mealPlanService{
		onboardingRepo: onboardingRepo,
		prefsRepo:      prefsRepo,
		generator:      generator,
		logger:         logger.With().Str("component", "mealplan").Logger(),
		sessions:       make(map[string]domain.PlanFlow),
	}
}

// resolvePreferences merges stored onboarding metrics, saved preferences
// and in-session edits into one normalized record. Precedence, lowest to
// highest: form defaults, targets computed from the onboarding profile, the
// saved preference record, the caller's edits.
func (s *mealPlanService) resolvePreferences(ctx context.Context, userID string, edits *domain.DietPreferences) (domain.DietPreferences, error) {
	if edits != nil {
		prefs := *edits
		prefs.UserID = userID
		return prefs, nil
	}

	saved, err := s.prefsRepo.GetByUserID(ctx, userID)
	if err == nil {
		return *saved, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.DietPreferences{}, err
	}

	prefs := defaultPreferences(userID)
	profile, err := s.onboardingRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return prefs, nil
		}
		return domain.DietPreferences{}, err
	}
	if targets, err := TargetsForProfile(profile); err == nil {
		prefs.CaloriesPerDay = targets.Calories
		prefs.ProteinGramsPerDay = targets.Protein
		prefs.CarbGramsPerDay = targets.Carbs
		prefs.FatGramsPerDay = targets.Fat
	}
	return prefs, nil
}

// Flow returns the current session flow, creating one at the quiz step with
// resolved preferences when none exists.
func (s *mealPlanService) Flow(ctx context.Context, userID string) (domain.PlanFlow, error) {
	s.mu.Lock()
	flow, ok := s.sessions[userID]
	s.mu.Unlock()
	if ok {
		return flow, nil
	}

	prefs, err := s.resolvePreferences(ctx, userID, nil)
	if err != nil {
		return domain.PlanFlow{}, err
	}
	flow = domain.NewPlanFlow(prefs, 7)
	s.storeFlow(userID, flow)
	return flow, nil
}

// Targets derives daily nutrition targets from the onboarding profile.
func (s *mealPlanService) Targets(ctx context.Context, userID string) (domain.NutritionTargets, error) {
	profile, err := s.onboardingRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NutritionTargets{}, ErrMissingProfileData
		}
		return domain.NutritionTargets{}, err
	}
	return TargetsForProfile(profile)
}

// Generate resolves preferences, runs the upstream pipeline and advances
// the flow. The quiz -> plan transition happens only on a successful
// generation that yields at least one day; every other outcome returns the
// prior flow unchanged alongside the error.
func (s *mealPlanService) Generate(ctx context.Context, userID string, edits *domain.DietPreferences, daysCount int) (domain.PlanFlow, error) {
	flow, err := s.Flow(ctx, userID)
	if err != nil {
		return domain.PlanFlow{}, err
	}

	prefs, err := s.resolvePreferences(ctx, userID, edits)
	if err != nil {
		return flow, err
	}

	days, err := s.generator.GenerateMealPlan(ctx, prefs, daysCount)
	if err != nil {
		s.logger.Warn().Err(err).Str("userID", userID).Msg("meal plan generation failed")
		return flow, err
	}

	next, err := flow.WithPreferences(prefs).ToPlan(days)
	if err != nil {
		return flow, err
	}
	next.DaysCount = daysCount

	s.storeFlow(userID, next)
	return next, nil
}

// SavePreferences writes the finalized preference record back to the store
// and mirrors it into the session flow.
func (s *mealPlanService) SavePreferences(ctx context.Context, userID string, prefs domain.DietPreferences) (*domain.DietPreferences, error) {
	prefs.UserID = userID
	saved, err := s.prefsRepo.Upsert(ctx, &prefs)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if flow, ok := s.sessions[userID]; ok {
		s.sessions[userID] = flow.WithPreferences(*saved)
	}
	s.mu.Unlock()
	return saved, nil
}

// Adjust transitions plan -> quiz so preferences can be edited again.
func (s *mealPlanService) Adjust(ctx context.Context, userID string) (domain.PlanFlow, error) {
	flow, err := s.Flow(ctx, userID)
	if err != nil {
		return domain.PlanFlow{}, err
	}
	next := flow.AdjustPreferences()
	s.storeFlow(userID, next)
	return next, nil
}

func (s *mealPlanService) storeFlow(userID string, flow domain.PlanFlow) {
	s.mu.Lock()
	s.sessions[userID] = flow
	s.mu.Unlock()
}
