package spoonacular

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"pulsefit/server/internal/domain"
)

// Fixed thresholds for the low-sodium and low-sugar flags, in mg and g.
const (
	lowSodiumMaxMg = 1500
	lowSugarMaxG   = 25
)

// PlanParams translates a preference record into weekly-plan query
// parameters. Optional preferences are omitted rather than defaulted; values
// are passed through without range validation, so out-of-range inputs reach
// the upstream service and its error, if any, comes back unmodified.
func PlanParams(prefs domain.DietPreferences) url.Values {
	params := url.Values{}
	params.Set("timeFrame", "week")

	calories := prefs.CaloriesPerDay
	if calories == 0 {
		calories = 2000
	}
	params.Set("targetCalories", strconv.Itoa(calories))

	if prefs.DietType != "" && prefs.DietType != "none" {
		params.Set("diet", prefs.DietType)
	}
	if len(prefs.ExcludedIngredients) > 0 {
		params.Set("exclude", strings.Join(prefs.ExcludedIngredients, ","))
	}
	if len(prefs.Intolerances) > 0 {
		params.Set("intolerances", strings.Join(prefs.Intolerances, ","))
	}

	// 90% of the protein target, only when the flag is set and a target exists.
	if prefs.HighProtein && prefs.ProteinGramsPerDay > 0 {
		minProtein := int(math.Round(float64(prefs.ProteinGramsPerDay) * 0.9))
		params.Set("minProtein", strconv.Itoa(minProtein))
	}
	if prefs.LowSodium {
		params.Set("maxSodium", strconv.Itoa(lowSodiumMaxMg))
	}
	if prefs.LowSugar {
		params.Set("maxSugar", strconv.Itoa(lowSugarMaxG))
	}

	return params
}
