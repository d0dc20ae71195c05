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

const cognitoUserCollectionName = "cognito_users"

// mongoCognitoUserRepository implements repository.CognitoUserRepository.
// Rows here are a mirror of the identity provider, written only by the
// admin-triggered sync.
type mongoCognitoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoCognitoUserRepository(db *mongo.Database) repository.CognitoUserRepository {
	return &mongoCognitoUserRepository{
		collection: db.Collection(cognitoUserCollectionName),
	}
}

// UpsertByUsername writes one mirror row keyed by username.
func (r *mongoCognitoUserRepository) UpsertByUsername(ctx context.Context, user *domain.CognitoUser) error {
	if user.Username == "" {
		return errors.New("cognito user username is required")
	}
	user.LastUpdated = time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"email":                user.Email,
			"enabled":              user.Enabled,
			"userStatus":           user.UserStatus,
			"userCreateDate":       user.UserCreateDate,
			"userLastModifiedDate": user.UserLastModifiedDate,
			"lastUpdated":          user.LastUpdated,
		},
		"$setOnInsert": bson.M{
			"_id":      primitive.NewObjectID(),
			"username": user.Username,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"username": user.Username}, update, opts)
	return err
}

// SetEnabled flips the enabled flag without touching the other mirrored
// attributes.
func (r *mongoCognitoUserRepository) SetEnabled(ctx context.Context, username string, enabled bool) error {
	update := bson.M{
		"$set": bson.M{"enabled": enabled, "lastUpdated": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"username": username}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns all mirror rows.
func (r *mongoCognitoUserRepository) List(ctx context.Context) ([]domain.CognitoUser, error) {
	opts := options.Find().SetSort(bson.D{{Key: "username", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []domain.CognitoUser
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteByUsername removes a mirror row after the provider-side delete.
func (r *mongoCognitoUserRepository) DeleteByUsername(ctx context.Context, username string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCognitoUserIndexes creates necessary indexes for the mirror
// collection. Call this once during application startup.
func EnsureCognitoUserIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Could not create indexes for %s: %v", cognitoUserCollectionName, err)
	}
}
