package spoonacular

import (
	"math"
	"strings"

	"pulsefit/server/internal/domain"
)

// Upstream nutrient names looked up by exact match.
const (
	nutrientCalories = "Calories"
	nutrientProtein  = "Protein"
	nutrientCarbs    = "Carbohydrates"
	nutrientFat      = "Fat"
)

// parseNutrition reduces the flat nutrient list to the four tracked macros.
// Missing entries default to 0, never an error; amounts are rounded to the
// nearest whole unit. A nil payload yields nil, which marks the meal's
// nutrition as unknown.
func parseNutrition(payload *nutritionPayload) *domain.Nutrition {
	if payload == nil || payload.Nutrients == nil {
		return nil
	}

	find := func(name string) int {
		for _, entry := range payload.Nutrients {
			if entry.Name == name {
				return int(math.Round(entry.Amount))
			}
		}
		return 0
	}

	return &domain.Nutrition{
		Calories: find(nutrientCalories),
		Protein:  find(nutrientProtein),
		Carbs:    find(nutrientCarbs),
		Fat:      find(nutrientFat),
	}
}

// normalizeImage rewrites bare image references to absolute URLs under the
// upstream image host. Already-absolute references pass through unchanged.
func normalizeImage(image, imageBaseURL string) string {
	if image == "" || strings.HasPrefix(image, "http") {
		return image
	}
	return strings.TrimSuffix(imageBaseURL, "/") + "/" + image
}
