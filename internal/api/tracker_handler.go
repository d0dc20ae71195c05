package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pulsefit/server/internal/domain"
	"pulsefit/server/internal/service"
)

// TrackerHandler exposes the workout/calorie tracker.
type TrackerHandler struct {
	trackerService service.TrackerService
}

func NewTrackerHandler(trackerService service.TrackerService) *TrackerHandler {
	return &TrackerHandler{trackerService: trackerService}
}

// LogWorkoutRequest is one tracker entry. Duration applies to cardio,
// sets/reps to strength.
type LogWorkoutRequest struct {
	Type     string     `json:"type" binding:"required,oneof=cardio strength"`
	Workout  string     `json:"workout" binding:"required"`
	Duration *int       `json:"duration"`
	Sets     *int       `json:"sets"`
	Reps     *int       `json:"reps"`
	Calories int        `json:"calories" binding:"required,gt=0"`
	Date     *time.Time `json:"date"`
	Weight   *float64   `json:"weight"`
}

// LogWorkout records a workout for the caller.
func (h *TrackerHandler) LogWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	record := &domain.WorkoutRecord{
		UserID:   userID,
		Type:     domain.WorkoutType(req.Type),
		Workout:  req.Workout,
		Duration: req.Duration,
		Sets:     req.Sets,
		Reps:     req.Reps,
		Calories: req.Calories,
		Weight:   req.Weight,
	}
	if req.Date != nil {
		record.Date = *req.Date
	}

	saved, err := h.trackerService.LogWorkout(c.Request.Context(), record)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWorkoutType),
			errors.Is(err, service.ErrInvalidWorkoutDetail),
			errors.Is(err, service.ErrCaloriesRequired):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to save workout")
		}
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// History lists the caller's workout records, newest first.
func (h *TrackerHandler) History(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	records, err := h.trackerService.History(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch workout history")
		return
	}
	if records == nil {
		records = []domain.WorkoutRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"workouts": records})
}

// DeleteWorkout removes one of the caller's records.
func (h *TrackerHandler) DeleteWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	recordID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout record ID")
		return
	}

	if err := h.trackerService.DeleteWorkout(c.Request.Context(), userID, recordID); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete workout")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workout deleted"})
}
