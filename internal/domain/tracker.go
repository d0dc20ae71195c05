package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutType distinguishes cardio from strength records; the two carry
// different detail fields.
type WorkoutType string

const (
	WorkoutCardio   WorkoutType = "cardio"
	WorkoutStrength WorkoutType = "strength"
)

// WorkoutRecord is one logged workout in the tracker. Records are
// owner-scoped, created and deleted by direct user action, never updated
// in place.
type WorkoutRecord struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   string             `bson:"userID" json:"userID"`
	Type     WorkoutType        `bson:"type" json:"type"`
	Workout  string             `bson:"workout" json:"workout"` // e.g. "Running", "Bench Press"
	Duration *int               `bson:"duration,omitempty" json:"duration,omitempty"` // Minutes, cardio only
	Sets     *int               `bson:"sets,omitempty" json:"sets,omitempty"`         // Strength only
	Reps     *int               `bson:"reps,omitempty" json:"reps,omitempty"`         // Strength only
	Calories int                `bson:"calories" json:"calories"`
	Date     time.Time          `bson:"date" json:"date"`
	Weight   *float64           `bson:"weight,omitempty" json:"weight,omitempty"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
}
