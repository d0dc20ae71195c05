package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulsefit/server/internal/domain"
	"pulsefit/server/internal/repository"
)

const preferencesCollectionName = "diet_preferences"

// mongoPreferencesRepository implements repository.PreferencesRepository.
type mongoPreferencesRepository struct {
	collection *mongo.Collection
}

func NewMongoPreferencesRepository(db *mongo.Database) repository.PreferencesRepository {
	return &mongoPreferencesRepository{
		collection: db.Collection(preferencesCollectionName),
	}
}

func (r *mongoPreferencesRepository) GetByUserID(ctx context.Context, userID string) (*domain.DietPreferences, error) {
	var prefs domain.DietPreferences
	err := r.collection.FindOne(ctx, bson.M{"userID": userID}).Decode(&prefs)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &prefs, nil
}

// Upsert persists the finalized preference record for reuse. LastUpdated is
// stamped here so every explicit save is visible in the stored record.
func (r *mongoPreferencesRepository) Upsert(ctx context.Context, prefs *domain.DietPreferences) (*domain.DietPreferences, error) {
	if prefs.UserID == "" {
		return nil, errors.New("preferences userID is required")
	}

	now := time.Now().UTC()
	prefs.LastUpdated = now
	if prefs.ID.IsZero() {
		prefs.ID = primitive.NewObjectID()
	}

	filter := bson.M{"userID": prefs.UserID}
	update := bson.M{
		"$set": bson.M{
			"dietType":            prefs.DietType,
			"intolerances":        prefs.Intolerances,
			"excludedIngredients": prefs.ExcludedIngredients,
			"caloriesPerDay":      prefs.CaloriesPerDay,
			"proteinGramsPerDay":  prefs.ProteinGramsPerDay,
			"carbGramsPerDay":     prefs.CarbGramsPerDay,
			"fatGramsPerDay":      prefs.FatGramsPerDay,
			"maxReadyTime":        prefs.MaxReadyTime,
			"cuisinePreferences":  prefs.CuisinePreferences,
			"lowSodium":           prefs.LowSodium,
			"lowSugar":            prefs.LowSugar,
			"highProtein":         prefs.HighProtein,
			"mealsPerDay":         prefs.MealsPerDay,
			"lastUpdated":         prefs.LastUpdated,
		},
		"$setOnInsert": bson.M{
			"_id":    prefs.ID,
			"userID": prefs.UserID,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var saved domain.DietPreferences
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// EnsurePreferencesIndexes creates necessary indexes for the diet
// preferences collection. Call this once during application startup.
func EnsurePreferencesIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userID", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Could not create indexes for %s: %v", preferencesCollectionName, err)
	}
}
