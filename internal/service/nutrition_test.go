package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefit/server/internal/domain"
)

func TestCalculateTargets(t *testing.T) {
	tests := []struct {
		name      string
		weightLbs float64
		goal      domain.FitnessGoal
		want      domain.NutritionTargets
	}{
		{
			name:      "muscle gain at 150 lbs",
			weightLbs: 150,
			goal:      domain.GoalMuscleGain,
			want:      domain.NutritionTargets{Calories: 2400, Protein: 123, Carbs: 215, Fat: 117},
		},
		{
			name:      "weight loss at 150 lbs",
			weightLbs: 150,
			goal:      domain.GoalWeightLoss,
			want:      domain.NutritionTargets{Calories: 1800, Protein: 123, Carbs: 147, Fat: 80},
		},
		{
			name:      "maintenance at 150 lbs",
			weightLbs: 150,
			goal:      domain.GoalMaintenance,
			want:      domain.NutritionTargets{Calories: 2250, Protein: 123, Carbs: 198, Fat: 107},
		},
		{
			name:      "endurance falls back to the maintenance coefficient",
			weightLbs: 150,
			goal:      domain.GoalEndurance,
			want:      domain.NutritionTargets{Calories: 2250, Protein: 123, Carbs: 198, Fat: 107},
		},
		{
			name:      "unknown goal falls back to the maintenance coefficient",
			weightLbs: 150,
			goal:      domain.FitnessGoal("figureSkating"),
			want:      domain.NutritionTargets{Calories: 2250, Protein: 123, Carbs: 198, Fat: 107},
		},
		{
			name:      "goal matching is case insensitive",
			weightLbs: 150,
			goal:      domain.FitnessGoal("MUSCLEGAIN"),
			want:      domain.NutritionTargets{Calories: 2400, Protein: 123, Carbs: 215, Fat: 117},
		},
		{
			name:      "intermediates stay unrounded until the final outputs",
			weightLbs: 137,
			goal:      domain.GoalWeightLoss,
			// protein = 112.34 g unrounded -> 449.36 protein kcal.
			want: domain.NutritionTargets{Calories: 1644, Protein: 112, Carbs: 134, Fat: 73},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateTargets(tt.weightLbs, tt.goal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateTargetsIsDeterministic(t *testing.T) {
	first, err := CalculateTargets(183.5, domain.GoalMuscleGain)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := CalculateTargets(183.5, domain.GoalMuscleGain)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCalculateTargetsRejectsMissingWeight(t *testing.T) {
	_, err := CalculateTargets(0, domain.GoalMaintenance)
	assert.ErrorIs(t, err, ErrMissingProfileData)

	_, err = CalculateTargets(-10, domain.GoalMaintenance)
	assert.ErrorIs(t, err, ErrMissingProfileData)
}

func TestTargetsForProfile(t *testing.T) {
	weight := 150.0
	targets, err := TargetsForProfile(&domain.OnboardingProfile{
		WeightLbs:       &weight,
		FitnessGoalType: domain.GoalMuscleGain,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.NutritionTargets{Calories: 2400, Protein: 123, Carbs: 215, Fat: 117}, targets)

	_, err = TargetsForProfile(nil)
	assert.ErrorIs(t, err, ErrMissingProfileData)

	_, err = TargetsForProfile(&domain.OnboardingProfile{FitnessGoalType: domain.GoalMuscleGain})
	assert.ErrorIs(t, err, ErrMissingProfileData)
}
