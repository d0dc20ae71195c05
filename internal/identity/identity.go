// Package identity wraps the managed identity provider's admin API. The
// provider remains the source of truth for account records; this package
// only consumes it.
package identity

import "context"

// User is the provider-agnostic view of one identity record.
type User struct {
	Username             string
	Email                string
	Enabled              bool
	UserStatus           string
	UserCreateDate       string
	UserLastModifiedDate string
}

// AdminClient is the capability needed by the admin console backend.
type AdminClient interface {
	ListUsers(ctx context.Context, userPoolID string) ([]User, error)
	EnableUser(ctx context.Context, userPoolID, username string) error
	DisableUser(ctx context.Context, userPoolID, username string) error
	DeleteUser(ctx context.Context, userPoolID, username string) error
}
