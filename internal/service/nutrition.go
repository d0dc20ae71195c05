package service

import (
	"errors"
	"math"

	"pulsefit/server/internal/domain"
)

// ErrMissingProfileData signals that a required onboarding input (body
// weight) is absent. Callers prompt the user to complete onboarding; the
// operation is not retried.
var ErrMissingProfileData = errors.New("onboarding profile is missing body weight")

// Calorie coefficients per pound of body weight, by fitness goal.
// Goals without a dedicated coefficient (including endurance) use the
// maintenance value.
const (
	caloriesPerLbWeightLoss  = 12
	caloriesPerLbMuscleGain  = 16
	caloriesPerLbMaintenance = 15

	proteinGramsPerLb = 0.82
	caloriesPerGramProtein = 4
	caloriesPerGramCarbs   = 4
	caloriesPerGramFat     = 9

	carbCalorieShare = 0.45
	fatCalorieShare  = 0.55
)

// CalculateTargets derives daily calorie and macro targets from body weight
// and fitness goal. It is a pure function: intermediate values stay
// unrounded and only the four outputs are rounded, so results are
// reproducible exactly.
//
// calories = weight x goal coefficient; protein = weight x 0.82 g; the
// calories left after protein split 45% to carbs (4 kcal/g) and 55% to fat
// (9 kcal/g).
func CalculateTargets(weightLbs float64, goal domain.FitnessGoal) (domain.NutritionTargets, error) {
	if weightLbs <= 0 {
		return domain.NutritionTargets{}, ErrMissingProfileData
	}

	var coefficient float64
	switch goal.Normalized() {
	case "weightloss":
		coefficient = caloriesPerLbWeightLoss
	case "musclegain":
		coefficient = caloriesPerLbMuscleGain
	default:
		coefficient = caloriesPerLbMaintenance
	}

	calories := weightLbs * coefficient
	proteinGrams := weightLbs * proteinGramsPerLb
	proteinCalories := proteinGrams * caloriesPerGramProtein

	remaining := calories - proteinCalories
	carbGrams := remaining * carbCalorieShare / caloriesPerGramCarbs
	fatGrams := remaining * fatCalorieShare / caloriesPerGramFat

	return domain.NutritionTargets{
		Calories: int(math.Round(calories)),
		Protein:  int(math.Round(proteinGrams)),
		Carbs:    int(math.Round(carbGrams)),
		Fat:      int(math.Round(fatGrams)),
	}, nil
}

// TargetsForProfile applies CalculateTargets to an onboarding profile.
func TargetsForProfile(profile *domain.OnboardingProfile) (domain.NutritionTargets, error) {
	if profile == nil || profile.WeightLbs == nil {
		return domain.NutritionTargets{}, ErrMissingProfileData
	}
	return CalculateTargets(*profile.WeightLbs, profile.FitnessGoalType)
}
