package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CognitoUser is a denormalized copy of an identity-provider user record.
// The collection is populated only by an explicit admin-triggered sync and
// is an eventually-consistent cache of the provider's source of truth.
type CognitoUser struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username             string             `bson:"username" json:"username"` // Unique
	Email                string             `bson:"email,omitempty" json:"email,omitempty"`
	Enabled              bool               `bson:"enabled" json:"enabled"`
	UserStatus           string             `bson:"userStatus,omitempty" json:"userStatus,omitempty"`
	UserCreateDate       string             `bson:"userCreateDate,omitempty" json:"userCreateDate,omitempty"`
	UserLastModifiedDate string             `bson:"userLastModifiedDate,omitempty" json:"userLastModifiedDate,omitempty"`
	LastUpdated          time.Time          `bson:"lastUpdated" json:"lastUpdated"` // When the mirror row was last synced
}
