package spoonacular

// Upstream payload shapes. Only the fields the pipeline reads are declared;
// everything else in the responses is ignored.

// nutrientEntry is one row of the flat per-recipe nutrient list. Order is
// not guaranteed and entries may be missing.
type nutrientEntry struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type nutritionPayload struct {
	Nutrients []nutrientEntry `json:"nutrients"`
}

// recipeDetails is the per-recipe information response.
type recipeDetails struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title"`
	Nutrition *nutritionPayload `json:"nutrition"`
}

// planMeal is one meal slot in the weekly-plan response.
type planMeal struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Image          string `json:"image"`
	ReadyInMinutes int    `json:"readyInMinutes"`
}

// planDay is one day of the weekly-plan response. The upstream day totals
// are discarded; they are recomputed from per-meal details.
type planDay struct {
	Meals []planMeal `json:"meals"`
}

// weeklyPlan is the /mealplanner/generate response, keyed by day of week.
type weeklyPlan struct {
	Week map[string]planDay `json:"week"`
}
