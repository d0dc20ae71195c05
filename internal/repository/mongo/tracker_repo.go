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

const trackerCollectionName = "workout_records"

// mongoTrackerRepository implements repository.TrackerRepository.
type mongoTrackerRepository struct {
	collection *mongo.Collection
}

func NewMongoTrackerRepository(db *mongo.Database) repository.TrackerRepository {
	return &mongoTrackerRepository{
		collection: db.Collection(trackerCollectionName),
	}
}

// Create inserts a new workout record.
func (r *mongoTrackerRepository) Create(ctx context.Context, record *domain.WorkoutRecord) (primitive.ObjectID, error) {
	if record.UserID == "" || record.Workout == "" {
		return primitive.NilObjectID, errors.New("record userID and workout are required")
	}

	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// ListByUserID returns the user's workout history, newest first.
func (r *mongoTrackerRepository) ListByUserID(ctx context.Context, userID string) ([]domain.WorkoutRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userID": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.WorkoutRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes a record only when it belongs to the given user.
func (r *mongoTrackerRepository) Delete(ctx context.Context, id primitive.ObjectID, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userID": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTrackerIndexes creates necessary indexes for the workout records
// collection. Call this once during application startup.
func EnsureTrackerIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userID", Value: 1}, {Key: "date", Value: -1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Could not create indexes for %s: %v", trackerCollectionName, err)
	}
}
