package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DietPreferences holds a user's saved meal-planning preferences. Macro
// targets start out as values derived from the onboarding profile and stay
// derived unless the user explicitly overrides them; no consistency between
// calories and macro grams is enforced after that point.
type DietPreferences struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID              string             `bson:"userID" json:"userID"`
	DietType            string             `bson:"dietType,omitempty" json:"dietType,omitempty"` // e.g. "vegetarian", "vegan", "none"
	Intolerances        []string           `bson:"intolerances,omitempty" json:"intolerances,omitempty"`
	ExcludedIngredients []string           `bson:"excludedIngredients,omitempty" json:"excludedIngredients,omitempty"`
	CaloriesPerDay      int                `bson:"caloriesPerDay,omitempty" json:"caloriesPerDay,omitempty"`
	ProteinGramsPerDay  int                `bson:"proteinGramsPerDay,omitempty" json:"proteinGramsPerDay,omitempty"`
	CarbGramsPerDay     int                `bson:"carbGramsPerDay,omitempty" json:"carbGramsPerDay,omitempty"`
	FatGramsPerDay      int                `bson:"fatGramsPerDay,omitempty" json:"fatGramsPerDay,omitempty"`
	MaxReadyTime        int                `bson:"maxReadyTime,omitempty" json:"maxReadyTime,omitempty"` // Minutes
	CuisinePreferences  []string           `bson:"cuisinePreferences,omitempty" json:"cuisinePreferences,omitempty"`
	LowSodium           bool               `bson:"lowSodium" json:"lowSodium"`
	LowSugar            bool               `bson:"lowSugar" json:"lowSugar"`
	HighProtein         bool               `bson:"highProtein" json:"highProtein"`
	MealsPerDay         int                `bson:"mealsPerDay,omitempty" json:"mealsPerDay,omitempty"`
	LastUpdated         time.Time          `bson:"lastUpdated" json:"lastUpdated"`
}
