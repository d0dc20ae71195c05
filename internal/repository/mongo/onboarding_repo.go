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

const onboardingCollectionName = "onboarding_profiles"

// mongoOnboardingRepository implements repository.OnboardingRepository.
type mongoOnboardingRepository struct {
	collection *mongo.Collection
}

func NewMongoOnboardingRepository(db *mongo.Database) repository.OnboardingRepository {
	return &mongoOnboardingRepository{
		collection: db.Collection(onboardingCollectionName),
	}
}

// GetByUserID retrieves the single live profile for a user.
func (r *mongoOnboardingRepository) GetByUserID(ctx context.Context, userID string) (*domain.OnboardingProfile, error) {
	var profile domain.OnboardingProfile
	err := r.collection.FindOne(ctx, bson.M{"userID": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert creates or replaces the user's profile. The unique userID index
// keeps this a lookup-then-create-or-update with at most one live record.
func (r *mongoOnboardingRepository) Upsert(ctx context.Context, profile *domain.OnboardingProfile) (*domain.OnboardingProfile, error) {
	if profile.UserID == "" {
		return nil, errors.New("profile userID is required")
	}

	now := time.Now().UTC()
	profile.UpdatedAt = now
	if profile.ID.IsZero() {
		profile.ID = primitive.NewObjectID()
		profile.CreatedAt = now
	}

	filter := bson.M{"userID": profile.UserID}
	update := bson.M{
		"$set": bson.M{
			"age":                  profile.Age,
			"heightFeet":           profile.HeightFeet,
			"heightInches":         profile.HeightInches,
			"weightLbs":            profile.WeightLbs,
			"gender":               profile.Gender,
			"bodyType":             profile.BodyType,
			"fitnessGoalType":      profile.FitnessGoalType,
			"fitnessType":          profile.FitnessType,
			"workoutFrequency":     profile.WorkoutFrequency,
			"preferredWorkoutTime": profile.PreferredWorkoutTime,
			"equipmentAvailable":   profile.EquipmentAvailable,
			"updatedAt":            profile.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":       profile.ID,
			"userID":    profile.UserID,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var saved domain.OnboardingProfile
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// EnsureOnboardingIndexes creates necessary indexes for the onboarding
// collection. Call this once during application startup.
func EnsureOnboardingIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userID", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Could not create indexes for %s: %v", onboardingCollectionName, err)
	}
}
