package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefit/server/internal/domain"
	"pulsefit/server/internal/identity"
	"pulsefit/server/internal/repository"
)

// fakeIdentityClient records the admin calls made against it.
type fakeIdentityClient struct {
	users    []identity.User
	listErr  error
	actions  []string
	lastPool string
}

func (f *fakeIdentityClient) ListUsers(_ context.Context, userPoolID string) ([]identity.User, error) {
	f.lastPool = userPoolID
	f.actions = append(f.actions, "list")
	return f.users, f.listErr
}

func (f *fakeIdentityClient) EnableUser(_ context.Context, userPoolID, username string) error {
	f.lastPool = userPoolID
	f.actions = append(f.actions, "enable:"+username)
	return nil
}

func (f *fakeIdentityClient) DisableUser(_ context.Context, userPoolID, username string) error {
	f.lastPool = userPoolID
	f.actions = append(f.actions, "disable:"+username)
	return nil
}

func (f *fakeIdentityClient) DeleteUser(_ context.Context, userPoolID, username string) error {
	f.lastPool = userPoolID
	f.actions = append(f.actions, "delete:"+username)
	return nil
}

type fakeMirrorRepo struct {
	rows map[string]*domain.CognitoUser
}

func newFakeMirrorRepo() *fakeMirrorRepo {
	return &fakeMirrorRepo{rows: make(map[string]*domain.CognitoUser)}
}

func (f *fakeMirrorRepo) UpsertByUsername(_ context.Context, user *domain.CognitoUser) error {
	stored := *user
	stored.LastUpdated = time.Now()
	f.rows[user.Username] = &stored
	return nil
}

func (f *fakeMirrorRepo) SetEnabled(_ context.Context, username string, enabled bool) error {
	row, ok := f.rows[username]
	if !ok {
		return repository.ErrNotFound
	}
	row.Enabled = enabled
	return nil
}

func (f *fakeMirrorRepo) List(_ context.Context) ([]domain.CognitoUser, error) {
	out := make([]domain.CognitoUser, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (f *fakeMirrorRepo) DeleteByUsername(_ context.Context, username string) error {
	if _, ok := f.rows[username]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, username)
	return nil
}

func newTestAdminService(idp identity.AdminClient, mirror repository.CognitoUserRepository) AdminService {
	return NewAdminService(idp, mirror, zerolog.Nop())
}

func TestSyncUsersPopulatesMirror(t *testing.T) {
	idp := &fakeIdentityClient{users: []identity.User{
		{Username: "alice", Email: "alice@example.com", Enabled: true, UserStatus: "CONFIRMED"},
		{Username: "bob", Email: "bob@example.com", Enabled: false, UserStatus: "FORCE_CHANGE_PASSWORD"},
	}}
	mirror := newFakeMirrorRepo()
	svc := newTestAdminService(idp, mirror)

	users, err := svc.SyncUsers(context.Background(), "pool-1")
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "pool-1", idp.lastPool)

	assert.Equal(t, "alice@example.com", mirror.rows["alice"].Email)
	assert.False(t, mirror.rows["bob"].Enabled)
}

func TestSyncUsersRequiresPool(t *testing.T) {
	svc := newTestAdminService(&fakeIdentityClient{}, newFakeMirrorRepo())
	_, err := svc.SyncUsers(context.Background(), "")
	assert.ErrorIs(t, err, ErrUserPoolRequired)
}

func TestSyncUsersProviderFailure(t *testing.T) {
	providerErr := errors.New("AccessDeniedException")
	svc := newTestAdminService(&fakeIdentityClient{listErr: providerErr}, newFakeMirrorRepo())

	_, err := svc.SyncUsers(context.Background(), "pool-1")
	assert.ErrorIs(t, err, providerErr)
}

func TestUpdateUserDispatch(t *testing.T) {
	tests := []struct {
		action      string
		wantCall    string
		wantMessage string
	}{
		{AdminActionEnableUser, "enable:alice", "User alice has been successfully enabled"},
		{AdminActionDisableUser, "disable:alice", "User alice has been successfully disabled"},
		{AdminActionDeleteUser, "delete:alice", "User alice has been successfully deleted"},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			idp := &fakeIdentityClient{}
			svc := newTestAdminService(idp, newFakeMirrorRepo())

			message, err := svc.UpdateUser(context.Background(), "pool-1", tt.action, "alice")
			require.NoError(t, err)
			assert.Equal(t, tt.wantMessage, message)
			assert.Contains(t, idp.actions, tt.wantCall)
		})
	}
}

func TestUpdateUserValidation(t *testing.T) {
	svc := newTestAdminService(&fakeIdentityClient{}, newFakeMirrorRepo())

	_, err := svc.UpdateUser(context.Background(), "", AdminActionEnableUser, "alice")
	assert.ErrorIs(t, err, ErrUserPoolRequired)

	_, err = svc.UpdateUser(context.Background(), "pool-1", AdminActionEnableUser, "")
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.UpdateUser(context.Background(), "pool-1", "promoteUser", "alice")
	assert.ErrorIs(t, err, ErrUnknownAdminAction)
}

func TestUpdateUserKeepsMirrorConsistent(t *testing.T) {
	idp := &fakeIdentityClient{users: []identity.User{
		{Username: "alice", Enabled: true},
	}}
	mirror := newFakeMirrorRepo()
	svc := newTestAdminService(idp, mirror)

	_, err := svc.SyncUsers(context.Background(), "pool-1")
	require.NoError(t, err)

	_, err = svc.UpdateUser(context.Background(), "pool-1", AdminActionDisableUser, "alice")
	require.NoError(t, err)
	assert.False(t, mirror.rows["alice"].Enabled)

	_, err = svc.UpdateUser(context.Background(), "pool-1", AdminActionDeleteUser, "alice")
	require.NoError(t, err)
	assert.NotContains(t, mirror.rows, "alice")
}

func TestUpdateUserToleratesMissingMirrorRow(t *testing.T) {
	// Enabling a user never synced into the mirror still succeeds; the row
	// appears on the next explicit sync.
	svc := newTestAdminService(&fakeIdentityClient{}, newFakeMirrorRepo())

	message, err := svc.UpdateUser(context.Background(), "pool-1", AdminActionEnableUser, "ghost")
	require.NoError(t, err)
	assert.Equal(t, "User ghost has been successfully enabled", message)
}

func TestMirrorUsersDoesNotTouchProvider(t *testing.T) {
	idp := &fakeIdentityClient{}
	mirror := newFakeMirrorRepo()
	require.NoError(t, mirror.UpsertByUsername(context.Background(), &domain.CognitoUser{Username: "alice"}))

	svc := newTestAdminService(idp, mirror)
	users, err := svc.MirrorUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Empty(t, idp.actions)
}
