package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group names used for authorization decisions.
const (
	GroupAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"` // Should be unique
	Email        string             `bson:"email" json:"email"`       // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"`    // Never expose this via JSON
	Groups       []string           `bson:"groups,omitempty" json:"groups,omitempty"`
	AvatarKey    string             `bson:"avatarKey,omitempty" json:"-"` // Object storage key, resolved to a URL on read
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// InGroup reports whether the user carries the given group claim.
func (u *User) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g == name {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.InGroup(GroupAdmin)
}
