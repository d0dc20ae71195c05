package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FitnessGoal is the user's stated objective from the onboarding quiz.
type FitnessGoal string

const (
	GoalWeightLoss  FitnessGoal = "weightLoss"
	GoalMuscleGain  FitnessGoal = "muscleGain"
	GoalEndurance   FitnessGoal = "endurance"
	GoalMaintenance FitnessGoal = "maintenance"
)

// Normalized returns the goal lowercased for comparison. Unknown or empty
// values are treated as maintenance by the target calculator.
func (g FitnessGoal) Normalized() string {
	return strings.ToLower(string(g))
}

// FitnessType describes the kind of training the user prefers.
type FitnessType string

const (
	FitnessStrength    FitnessType = "strength"
	FitnessCardio      FitnessType = "cardio"
	FitnessFlexibility FitnessType = "flexibility"
	FitnessMixed       FitnessType = "mixed"
)

// OnboardingProfile holds the body metrics and goals collected by the
// onboarding quiz. At most one live record exists per user.
type OnboardingProfile struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID               string             `bson:"userID" json:"userID"` // Unique per user
	Age                  *int               `bson:"age,omitempty" json:"age,omitempty"`
	HeightFeet           *int               `bson:"heightFeet,omitempty" json:"heightFeet,omitempty"`
	HeightInches         *int               `bson:"heightInches,omitempty" json:"heightInches,omitempty"`
	WeightLbs            *float64           `bson:"weightLbs,omitempty" json:"weightLbs,omitempty"`
	Gender               string             `bson:"gender,omitempty" json:"gender,omitempty"`
	BodyType             string             `bson:"bodyType,omitempty" json:"bodyType,omitempty"`
	FitnessGoalType      FitnessGoal        `bson:"fitnessGoalType,omitempty" json:"fitnessGoalType,omitempty"`
	FitnessType          FitnessType        `bson:"fitnessType,omitempty" json:"fitnessType,omitempty"`
	WorkoutFrequency     string             `bson:"workoutFrequency,omitempty" json:"workoutFrequency,omitempty"`
	PreferredWorkoutTime string             `bson:"preferredWorkoutTime,omitempty" json:"preferredWorkoutTime,omitempty"`
	EquipmentAvailable   string             `bson:"equipmentAvailable,omitempty" json:"equipmentAvailable,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}
