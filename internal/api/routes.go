package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pulsefit/server/internal/domain"
	"pulsefit/server/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	defaultUserPoolID string,
	authService service.AuthService,
	userService service.UserService,
	onboardingService service.OnboardingService,
	mealPlanService service.MealPlanService,
	trackerService service.TrackerService,
	adminService service.AdminService,
) {

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	onboardingHandler := NewOnboardingHandler(onboardingService)
	mealPlanHandler := NewMealPlanHandler(mealPlanService)
	trackerHandler := NewTrackerHandler(trackerService)
	adminHandler := NewAdminHandler(adminService, defaultUserPoolID)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Account Routes ---
		usersGroup := protected.Group("/users/me")
		{
			usersGroup.GET("", userHandler.GetProfile)
			usersGroup.POST("/avatar", userHandler.RequestAvatarUpload)
			usersGroup.GET("/avatar", userHandler.GetAvatarURL)
		}

		// --- Onboarding Routes ---
		onboardingGroup := protected.Group("/onboarding")
		{
			onboardingGroup.GET("", onboardingHandler.GetProfile)
			onboardingGroup.PUT("", onboardingHandler.SaveProfile)
		}

		// --- Meal Plan Routes ---
		mealPlanGroup := protected.Group("/mealplan")
		{
			mealPlanGroup.GET("/flow", mealPlanHandler.GetFlow)
			mealPlanGroup.GET("/targets", mealPlanHandler.GetTargets)
			mealPlanGroup.POST("/generate", mealPlanHandler.Generate)
			mealPlanGroup.PUT("/preferences", mealPlanHandler.SavePreferences)
			mealPlanGroup.POST("/adjust", mealPlanHandler.Adjust)
		}

		// --- Workout Tracker Routes ---
		trackerGroup := protected.Group("/tracker")
		{
			trackerGroup.POST("/workouts", trackerHandler.LogWorkout)
			trackerGroup.GET("/workouts", trackerHandler.History)
			trackerGroup.DELETE("/workouts/:id", trackerHandler.DeleteWorkout)
		}

		// --- Admin Routes ---
		// Group claim only; the seed email list never grants access here.
		adminGroup := protected.Group("/admin")
		adminGroup.Use(GroupMiddleware(domain.GroupAdmin))
		{
			adminGroup.POST("/listUsers", adminHandler.ListUsers)
			adminGroup.POST("/updateUser", adminHandler.UpdateUser)
			adminGroup.GET("/users", adminHandler.MirrorUsers)
		}
	}
}
