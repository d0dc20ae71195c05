package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pulsefit/server/internal/domain"
	"pulsefit/server/internal/service"
	"pulsefit/server/internal/spoonacular"
)

// MealPlanHandler drives the quiz/plan flow and the generation pipeline.
type MealPlanHandler struct {
	mealPlanService service.MealPlanService
}

func NewMealPlanHandler(mealPlanService service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{mealPlanService: mealPlanService}
}

// --- Request/Response Structs ---

// PreferencesRequest mirrors the preference form. When present on a
// generate call it acts as the in-session edit that wins over stored data.
type PreferencesRequest struct {
	DietType            string   `json:"dietType"`
	Intolerances        []string `json:"intolerances"`
	ExcludedIngredients []string `json:"excludedIngredients"`
	CaloriesPerDay      int      `json:"caloriesPerDay"`
	ProteinGramsPerDay  int      `json:"proteinGramsPerDay"`
	CarbGramsPerDay     int      `json:"carbGramsPerDay"`
	FatGramsPerDay      int      `json:"fatGramsPerDay"`
	MaxReadyTime        int      `json:"maxReadyTime"`
	CuisinePreferences  []string `json:"cuisinePreferences"`
	LowSodium           bool     `json:"lowSodium"`
	LowSugar            bool     `json:"lowSugar"`
	HighProtein         bool     `json:"highProtein"`
	MealsPerDay         int      `json:"mealsPerDay"`
}

type GenerateRequest struct {
	DaysCount   int                 `json:"daysCount" binding:"omitempty,min=1,max=30"`
	Preferences *PreferencesRequest `json:"preferences"`
}

func (r *PreferencesRequest) toDomain() domain.DietPreferences {
	return domain.DietPreferences{
		DietType:            r.DietType,
		Intolerances:        r.Intolerances,
		ExcludedIngredients: r.ExcludedIngredients,
		CaloriesPerDay:      r.CaloriesPerDay,
		ProteinGramsPerDay:  r.ProteinGramsPerDay,
		CarbGramsPerDay:     r.CarbGramsPerDay,
		FatGramsPerDay:      r.FatGramsPerDay,
		MaxReadyTime:        r.MaxReadyTime,
		CuisinePreferences:  r.CuisinePreferences,
		LowSodium:           r.LowSodium,
		LowSugar:            r.LowSugar,
		HighProtein:         r.HighProtein,
		MealsPerDay:         r.MealsPerDay,
	}
}

// --- Handler Methods ---

// GetFlow returns the caller's current quiz/plan flow state.
func (h *MealPlanHandler) GetFlow(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	flow, err := h.mealPlanService.Flow(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve meal plan state")
		return
	}
	c.JSON(http.StatusOK, flow)
}

// GetTargets derives daily nutrition targets from the onboarding profile.
func (h *MealPlanHandler) GetTargets(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	targets, err := h.mealPlanService.Targets(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrMissingProfileData) {
			// Not retried; the client prompts the user to finish onboarding.
			abortWithError(c, http.StatusUnprocessableEntity, "Complete the onboarding quiz before requesting nutrition targets")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to calculate nutrition targets")
		}
		return
	}
	c.JSON(http.StatusOK, targets)
}

// Generate runs the meal-plan pipeline. On success the flow advances to the
// plan step; on any failure the flow (and the saved preferences) stay as
// they were and the upstream status text is surfaced.
func (h *MealPlanHandler) Generate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var edits *domain.DietPreferences
	if req.Preferences != nil {
		prefs := req.Preferences.toDomain()
		edits = &prefs
	}

	flow, err := h.mealPlanService.Generate(c.Request.Context(), userID, edits, req.DaysCount)
	if err != nil {
		switch {
		case errors.Is(err, spoonacular.ErrUpstreamUnavailable):
			abortWithError(c, http.StatusBadGateway, err.Error())
		case errors.Is(err, spoonacular.ErrMalformedResponse):
			abortWithError(c, http.StatusBadGateway, err.Error())
		case errors.Is(err, domain.ErrEmptyPlan):
			abortWithError(c, http.StatusBadGateway, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate meal plan")
		}
		return
	}

	c.JSON(http.StatusOK, flow)
}

// SavePreferences persists the preference record for reuse.
func (h *MealPlanHandler) SavePreferences(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	saved, err := h.mealPlanService.SavePreferences(c.Request.Context(), userID, req.toDomain())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save diet preferences")
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Adjust returns the flow to the quiz step for preference editing.
func (h *MealPlanHandler) Adjust(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	flow, err := h.mealPlanService.Adjust(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to adjust meal plan state")
		return
	}
	c.JSON(http.StatusOK, flow)
}
