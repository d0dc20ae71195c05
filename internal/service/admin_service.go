package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"pulsefit/server/internal/domain"
	"pulsefit/server/internal/identity"
	"pulsefit/server/internal/repository"
)

// --- Error Definitions ---
var (
	ErrUnknownAdminAction = errors.New("invalid action")
	ErrUsernameRequired   = errors.New("username is required")
	ErrUserPoolRequired   = errors.New("user pool ID is required")
)

// Admin actions accepted by the console endpoints.
const (
	AdminActionListUsers   = "listUsers"
	AdminActionEnableUser  = "enableUser"
	AdminActionDisableUser = "disableUser"
	AdminActionDeleteUser  = "deleteUser"
)

// --- Service Interface ---
type AdminService interface {
	// SyncUsers lists the pool's users from the identity provider and
	// refreshes the local mirror collection. This is the only writer of
	// the mirror.
	SyncUsers(ctx context.Context, userPoolID string) ([]domain.CognitoUser, error)
	// UpdateUser applies one enable/disable/delete action at the provider
	// and keeps the mirror row consistent.
	UpdateUser(ctx context.Context, userPoolID, action, username string) (string, error)
	// MirrorUsers returns the cached mirror without touching the provider.
	MirrorUsers(ctx context.Context) ([]domain.CognitoUser, error)
}

// adminService implements the AdminService interface.
type adminService struct {
	idp        identity.AdminClient
	mirrorRepo repository.CognitoUserRepository
	logger     zerolog.Logger
}

// NewAdminService creates a new instance of adminService.
func NewAdminService(idp identity.AdminClient, mirrorRepo repository.CognitoUserRepository, logger zerolog.Logger) AdminService {
	return &adminService{
		idp:        idp,
		mirrorRepo: mirrorRepo,
		logger:     logger.With().Str("component", "admin").Logger(),
	}
}

// SyncUsers pulls the pool's users and upserts each into the mirror.
func (s *adminService) SyncUsers(ctx context.Context, userPoolID string) ([]domain.CognitoUser, error) {
	if userPoolID == "" {
		return nil, ErrUserPoolRequired
	}

	idpUsers, err := s.idp.ListUsers(ctx, userPoolID)
	if err != nil {
		return nil, err
	}

	users := make([]domain.CognitoUser, 0, len(idpUsers))
	for _, idpUser := range idpUsers {
		user := domain.CognitoUser{
			Username:             idpUser.Username,
			Email:                idpUser.Email,
			Enabled:              idpUser.Enabled,
			UserStatus:           idpUser.UserStatus,
			UserCreateDate:       idpUser.UserCreateDate,
			UserLastModifiedDate: idpUser.UserLastModifiedDate,
		}
		if err := s.mirrorRepo.UpsertByUsername(ctx, &user); err != nil {
			// The provider answered; a stale mirror row is tolerable.
			s.logger.Warn().Err(err).Str("username", user.Username).Msg("mirror upsert failed")
		}
		users = append(users, user)
	}

	s.logger.Info().Str("userPoolID", userPoolID).Int("count", len(users)).Msg("synced identity users")
	return users, nil
}

// UpdateUser dispatches one admin action and returns a human-readable
// confirmation message.
func (s *adminService) UpdateUser(ctx context.Context, userPoolID, action, username string) (string, error) {
	if userPoolID == "" {
		return "", ErrUserPoolRequired
	}
	if username == "" {
		return "", ErrUsernameRequired
	}

	switch action {
	case AdminActionEnableUser:
		if err := s.idp.EnableUser(ctx, userPoolID, username); err != nil {
			return "", err
		}
		s.refreshMirrorEnabled(ctx, username, true)
		return "User " + username + " has been successfully enabled", nil

	case AdminActionDisableUser:
		if err := s.idp.DisableUser(ctx, userPoolID, username); err != nil {
			return "", err
		}
		s.refreshMirrorEnabled(ctx, username, false)
		return "User " + username + " has been successfully disabled", nil

	case AdminActionDeleteUser:
		if err := s.idp.DeleteUser(ctx, userPoolID, username); err != nil {
			return "", err
		}
		if err := s.mirrorRepo.DeleteByUsername(ctx, username); err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn().Err(err).Str("username", username).Msg("mirror delete failed")
		}
		return "User " + username + " has been successfully deleted", nil

	default:
		return "", ErrUnknownAdminAction
	}
}

// MirrorUsers reads the eventually-consistent mirror collection.
func (s *adminService) MirrorUsers(ctx context.Context) ([]domain.CognitoUser, error) {
	return s.mirrorRepo.List(ctx)
}

// refreshMirrorEnabled flips the enabled flag on the mirror row if present.
// Rows missing from the mirror stay missing until the next explicit sync.
func (s *adminService) refreshMirrorEnabled(ctx context.Context, username string, enabled bool) {
	err := s.mirrorRepo.SetEnabled(ctx, username, enabled)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn().Err(err).Str("username", username).Msg("mirror update failed")
	}
}
