package domain

// Nutrition is a parsed per-meal (or per-day) macro summary, rounded to
// whole units.
type Nutrition struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Add accumulates another nutrition value field by field.
func (n *Nutrition) Add(other Nutrition) {
	n.Calories += other.Calories
	n.Protein += other.Protein
	n.Carbs += other.Carbs
	n.Fat += other.Fat
}

// Meal is one recipe slot within a generated meal-plan day. Nutrition is nil
// when the per-recipe detail fetch failed; such meals stay in the list but
// contribute nothing to the day's totals.
type Meal struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Image          string     `json:"image"`
	ReadyInMinutes int        `json:"readyInMinutes"`
	Nutrition      *Nutrition `json:"nutrition"`
}

// MealPlanDay is one day of a generated plan. It is constructed fresh per
// generation request and never persisted. Nutrients is always the sum of the
// meals' nutrition (zero contribution for meals whose detail fetch failed).
type MealPlanDay struct {
	Meals     []Meal    `json:"meals"`
	Nutrients Nutrition `json:"nutrients"`
}

// NutritionTargets are the daily calorie/macro targets derived from body
// weight and fitness goal.
type NutritionTargets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}
