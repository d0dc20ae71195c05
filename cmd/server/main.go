package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"pulsefit/server/internal/api"
	"pulsefit/server/internal/cache"
	"pulsefit/server/internal/config"
	"pulsefit/server/internal/identity"
	"pulsefit/server/internal/repository/mongo"
	"pulsefit/server/internal/service"
	"pulsefit/server/internal/spoonacular"
	"pulsefit/server/internal/storage"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		logger.Info().Msg(".env file loaded")
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load config")
	}
	logger.Info().Msg("Configuration loaded")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not connect to MongoDB")
	}
	defer func() {
		logger.Info().Msg("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error().Err(err).Msg("Failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info().Msg("Database connection established")

	// --- Ensure Indexes ---
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureOnboardingIndexes(ctx, appDB.Collection("onboarding_profiles"))
		mongo.EnsurePreferencesIndexes(ctx, appDB.Collection("diet_preferences"))
		mongo.EnsureTrackerIndexes(ctx, appDB.Collection("workout_records"))
		mongo.EnsureCognitoUserIndexes(ctx, appDB.Collection("cognito_users"))
		logger.Info().Msg("Index creation process completed")
	}()

	// --- Initialize Cache ---
	var kv cache.Cache
	switch cfg.Cache.Backend {
	case "redis":
		redisCache, err := cache.NewRedis(context.Background(), cfg.Cache.RedisAddress, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisCache.Close()
		kv = redisCache
		logger.Info().Str("address", cfg.Cache.RedisAddress).Msg("Redis cache initialized")
	default:
		kv = cache.NewMemory()
		logger.Info().Msg("In-memory cache initialized")
	}

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize S3 storage")
	}

	// --- Initialize Identity Provider Client ---
	idpClient, err := identity.NewCognitoClient(context.Background(), cfg.Cognito)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize identity provider client")
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	onboardingRepo := mongo.NewMongoOnboardingRepository(appDB)
	preferencesRepo := mongo.NewMongoPreferencesRepository(appDB)
	trackerRepo := mongo.NewMongoTrackerRepository(appDB)
	cognitoUserRepo := mongo.NewMongoCognitoUserRepository(appDB)

	// --- Initialize Upstream Client ---
	recipeClient := spoonacular.NewClient(cfg.Spoonacular, kv, logger)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.Admin.SeedEmails)
	userService := service.NewUserService(userRepo, fileStorage, kv)
	onboardingService := service.NewOnboardingService(onboardingRepo)
	mealPlanService := service.NewMealPlanService(onboardingRepo, preferencesRepo, recipeClient, logger)
	trackerService := service.NewTrackerService(trackerRepo)
	adminService := service.NewAdminService(idpClient, cognitoUserRepo, logger)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.New()
	router.Use(api.RequestLogger(logger), gin.Recovery())

	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		cfg.Cognito.UserPoolID,
		authService,
		userService,
		onboardingService,
		mealPlanService,
		trackerService,
		adminService,
	)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      corsHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info().Str("address", cfg.Server.Address).Msg("Server starting")

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("ListenAndServe error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exiting")
}
