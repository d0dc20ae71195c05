package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pulsefit/server/internal/domain"
	"pulsefit/server/internal/service"
)

// OnboardingHandler exposes the onboarding quiz profile.
type OnboardingHandler struct {
	onboardingService service.OnboardingService
}

func NewOnboardingHandler(onboardingService service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

// OnboardingRequest is the quiz submission payload. All metric fields are
// optional so partially completed quizzes can still be saved.
type OnboardingRequest struct {
	Age                  *int     `json:"age"`
	HeightFeet           *int     `json:"heightFeet"`
	HeightInches         *int     `json:"heightInches"`
	WeightLbs            *float64 `json:"weightLbs"`
	Gender               string   `json:"gender"`
	BodyType             string   `json:"bodyType"`
	FitnessGoalType      string   `json:"fitnessGoalType" binding:"omitempty,oneof=weightLoss muscleGain endurance maintenance"`
	FitnessType          string   `json:"fitnessType" binding:"omitempty,oneof=strength cardio flexibility mixed"`
	WorkoutFrequency     string   `json:"workoutFrequency"`
	PreferredWorkoutTime string   `json:"preferredWorkoutTime"`
	EquipmentAvailable   string   `json:"equipmentAvailable"`
}

// GetProfile returns the caller's onboarding profile.
func (h *OnboardingHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	profile, err := h.onboardingService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch onboarding profile")
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SaveProfile creates or updates the caller's single live profile record.
func (h *OnboardingHandler) SaveProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile := &domain.OnboardingProfile{
		UserID:               userID,
		Age:                  req.Age,
		HeightFeet:           req.HeightFeet,
		HeightInches:         req.HeightInches,
		WeightLbs:            req.WeightLbs,
		Gender:               req.Gender,
		BodyType:             req.BodyType,
		FitnessGoalType:      domain.FitnessGoal(req.FitnessGoalType),
		FitnessType:          domain.FitnessType(req.FitnessType),
		WorkoutFrequency:     req.WorkoutFrequency,
		PreferredWorkoutTime: req.PreferredWorkoutTime,
		EquipmentAvailable:   req.EquipmentAvailable,
	}

	saved, err := h.onboardingService.SaveProfile(c.Request.Context(), profile)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save onboarding profile")
		return
	}

	c.JSON(http.StatusOK, saved)
}
