package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefit/server/internal/domain"
	"pulsefit/server/internal/repository"
)

// --- Fakes ---

type fakeOnboardingRepo struct {
	profiles map[string]*domain.OnboardingProfile
}

func (f *fakeOnboardingRepo) GetByUserID(_ context.Context, userID string) (*domain.OnboardingProfile, error) {
	if profile, ok := f.profiles[userID]; ok {
		return profile, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeOnboardingRepo) Upsert(_ context.Context, profile *domain.OnboardingProfile) (*domain.OnboardingProfile, error) {
	if f.profiles == nil {
		f.profiles = make(map[string]*domain.OnboardingProfile)
	}
	f.profiles[profile.UserID] = profile
	return profile, nil
}

type fakePreferencesRepo struct {
	records map[string]*domain.DietPreferences
}

func (f *fakePreferencesRepo) GetByUserID(_ context.Context, userID string) (*domain.DietPreferences, error) {
	if record, ok := f.records[userID]; ok {
		return record, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakePreferencesRepo) Upsert(_ context.Context, prefs *domain.DietPreferences) (*domain.DietPreferences, error) {
	if f.records == nil {
		f.records = make(map[string]*domain.DietPreferences)
	}
	prefs.LastUpdated = time.Now()
	f.records[prefs.UserID] = prefs
	return prefs, nil
}

// fakeGenerator returns a canned plan or error and records the preferences
// it was invoked with.
type fakeGenerator struct {
	days      []domain.MealPlanDay
	err       error
	lastPrefs domain.DietPreferences
	calls     int
}

func (f *fakeGenerator) GenerateMealPlan(_ context.Context, prefs domain.DietPreferences, _ int) ([]domain.MealPlanDay, error) {
	f.calls++
	f.lastPrefs = prefs
	return f.days, f.err
}

func newTestMealPlanService(onb *fakeOnboardingRepo, prefs *fakePreferencesRepo, gen *fakeGenerator) MealPlanService {
	return NewMealPlanService(onb, prefs, gen, zerolog.Nop())
}

func oneDayPlan() []domain.MealPlanDay {
	return []domain.MealPlanDay{{
		Meals:     []domain.Meal{{ID: 1, Title: "Oatmeal"}},
		Nutrients: domain.Nutrition{Calories: 400},
	}}
}

// --- Tests ---

func TestFlowStartsAtQuizWithDefaults(t *testing.T) {
	svc := newTestMealPlanService(&fakeOnboardingRepo{}, &fakePreferencesRepo{}, &fakeGenerator{})

	flow, err := svc.Flow(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepQuiz, flow.Step)
	assert.Equal(t, 2000, flow.Preferences.CaloriesPerDay)
	assert.Equal(t, "none", flow.Preferences.DietType)
}

func TestFlowSeedsTargetsFromOnboardingProfile(t *testing.T) {
	weight := 150.0
	onb := &fakeOnboardingRepo{profiles: map[string]*domain.OnboardingProfile{
		"u1": {UserID: "u1", WeightLbs: &weight, FitnessGoalType: domain.GoalMuscleGain},
	}}
	svc := newTestMealPlanService(onb, &fakePreferencesRepo{}, &fakeGenerator{})

	flow, err := svc.Flow(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2400, flow.Preferences.CaloriesPerDay)
	assert.Equal(t, 123, flow.Preferences.ProteinGramsPerDay)
	assert.Equal(t, 215, flow.Preferences.CarbGramsPerDay)
	assert.Equal(t, 117, flow.Preferences.FatGramsPerDay)
}

func TestFlowPrefersSavedRecordOverProfile(t *testing.T) {
	weight := 150.0
	onb := &fakeOnboardingRepo{profiles: map[string]*domain.OnboardingProfile{
		"u1": {UserID: "u1", WeightLbs: &weight, FitnessGoalType: domain.GoalMuscleGain},
	}}
	prefs := &fakePreferencesRepo{records: map[string]*domain.DietPreferences{
		"u1": {UserID: "u1", DietType: "vegan", CaloriesPerDay: 1700},
	}}
	svc := newTestMealPlanService(onb, prefs, &fakeGenerator{})

	flow, err := svc.Flow(context.Background(), "u1")
	require.NoError(t, err)
	// The saved record wins wholesale; derived targets are not merged in.
	assert.Equal(t, "vegan", flow.Preferences.DietType)
	assert.Equal(t, 1700, flow.Preferences.CaloriesPerDay)
	assert.Equal(t, 0, flow.Preferences.ProteinGramsPerDay)
}

func TestGenerateAdvancesToPlan(t *testing.T) {
	gen := &fakeGenerator{days: oneDayPlan()}
	svc := newTestMealPlanService(&fakeOnboardingRepo{}, &fakePreferencesRepo{}, gen)

	flow, err := svc.Generate(context.Background(), "u1", nil, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPlan, flow.Step)
	assert.Len(t, flow.Plan, 1)
	assert.Equal(t, 7, flow.DaysCount)

	// The session sticks: a later Flow call sees the plan step.
	again, err := svc.Flow(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepPlan, again.Step)
}

func TestGenerateUsesEditsWholesale(t *testing.T) {
	gen := &fakeGenerator{days: oneDayPlan()}
	svc := newTestMealPlanService(&fakeOnboardingRepo{}, &fakePreferencesRepo{}, gen)

	edits := &domain.DietPreferences{DietType: "paleo", CaloriesPerDay: 1850}
	flow, err := svc.Generate(context.Background(), "u1", edits, 7)
	require.NoError(t, err)

	assert.Equal(t, "paleo", gen.lastPrefs.DietType)
	assert.Equal(t, 1850, gen.lastPrefs.CaloriesPerDay)
	assert.Equal(t, "u1", gen.lastPrefs.UserID)
	assert.Equal(t, "paleo", flow.Preferences.DietType)
}

func TestGenerateFailureLeavesFlowAtQuiz(t *testing.T) {
	upstreamErr := errors.New("upstream recipe service unavailable: 402 Payment Required")
	gen := &fakeGenerator{err: upstreamErr}
	prefs := &fakePreferencesRepo{records: map[string]*domain.DietPreferences{
		"u1": {UserID: "u1", DietType: "vegan", CaloriesPerDay: 1700},
	}}
	svc := newTestMealPlanService(&fakeOnboardingRepo{}, prefs, gen)

	flow, err := svc.Generate(context.Background(), "u1", nil, 7)
	assert.ErrorIs(t, err, upstreamErr)
	assert.Equal(t, domain.StepQuiz, flow.Step)
	// Prior preferences are untouched.
	assert.Equal(t, "vegan", flow.Preferences.DietType)

	again, err := svc.Flow(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepQuiz, again.Step)
	assert.Equal(t, "vegan", again.Preferences.DietType)
}

func TestGenerateEmptyPlanStaysAtQuiz(t *testing.T) {
	gen := &fakeGenerator{days: []domain.MealPlanDay{}}
	svc := newTestMealPlanService(&fakeOnboardingRepo{}, &fakePreferencesRepo{}, gen)

	flow, err := svc.Generate(context.Background(), "u1", nil, 7)
	assert.ErrorIs(t, err, domain.ErrEmptyPlan)
	assert.Equal(t, domain.StepQuiz, flow.Step)
}

func TestSavePreferencesPersistsAndMirrorsSession(t *testing.T) {
	prefsRepo := &fakePreferencesRepo{}
	gen := &fakeGenerator{days: oneDayPlan()}
	svc := newTestMealPlanService(&fakeOnboardingRepo{}, prefsRepo, gen)

	_, err := svc.Generate(context.Background(), "u1", nil, 7)
	require.NoError(t, err)

	saved, err := svc.SavePreferences(context.Background(), "u1", domain.DietPreferences{DietType: "keto"})
	require.NoError(t, err)
	assert.Equal(t, "u1", saved.UserID)
	assert.Equal(t, "keto", prefsRepo.records["u1"].DietType)

	// The live session reflects the save without changing step.
	flow, err := svc.Flow(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepPlan, flow.Step)
	assert.Equal(t, "keto", flow.Preferences.DietType)
}

func TestAdjustReturnsToQuiz(t *testing.T) {
	gen := &fakeGenerator{days: oneDayPlan()}
	svc := newTestMealPlanService(&fakeOnboardingRepo{}, &fakePreferencesRepo{}, gen)

	_, err := svc.Generate(context.Background(), "u1", nil, 7)
	require.NoError(t, err)

	flow, err := svc.Adjust(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepQuiz, flow.Step)
	assert.Nil(t, flow.Plan)
}

func TestTargetsRequireOnboardingProfile(t *testing.T) {
	svc := newTestMealPlanService(&fakeOnboardingRepo{}, &fakePreferencesRepo{}, &fakeGenerator{})

	_, err := svc.Targets(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrMissingProfileData)
}
