package identity

import (
	"context"
	"testing"
	"time"

	appaudit "github.com/clubfinanzas/backend/internal/application/audit"
	"github.com/clubfinanzas/backend/internal/domain/audit"
	"github.com/clubfinanzas/backend/internal/domain/identity"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/clubfinanzas/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type userFixture struct {
	users     *MockUserRepository
	logs      *MockLogRepository
	blacklist *auth.InMemoryTokenBlacklist
	service   *UserService
	clubID    uuid.UUID
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:     new(MockUserRepository),
		logs:      new(MockLogRepository),
		blacklist: auth.NewInMemoryTokenBlacklist(),
		clubID:    uuid.New(),
	}
	logger := zap.NewNop()
	f.service = NewUserService(f.users, f.blacklist, time.Hour, appaudit.NewRecorder(f.logs, logger), logger)
	return f
}

func (f *userFixture) expectAudit(action string) {
	f.logs.On("Create", mock.Anything, mock.MatchedBy(func(l *audit.Log) bool {
		return l.Action == action && l.EntityType == audit.EntityUser && l.ClubID == f.clubID
	})).Return(nil).Once()
}

func (f *userFixture) sessionRevoked(t *testing.T, userID uuid.UUID) bool {
	t.Helper()
	revoked, err := f.blacklist.IsUserTokenInvalidated(context.Background(), userID.String(), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	return revoked
}

func TestUserService_Create(t *testing.T) {
	f := newUserFixture()
	f.users.On("ExistsByEmail", mock.Anything, "tesorero@club.test", uuid.Nil).Return(false, nil)
	f.users.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)
	f.expectAudit(audit.ActionCreate)

	resp, err := f.service.Create(context.Background(), f.clubID, CreateUserRequest{
		Email:    "Tesorero@Club.test",
		Password: testPassword,
		Name:     "Luis Gómez",
		Role:     "tesorero",
	})
	require.NoError(t, err)
	assert.Equal(t, "tesorero@club.test", resp.Email)
	assert.Equal(t, "tesorero", resp.Role)
	assert.Equal(t, &f.clubID, resp.ClubID)
	assert.True(t, resp.Active)
	f.logs.AssertExpectations(t)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	f := newUserFixture()
	f.users.On("ExistsByEmail", mock.Anything, "admin@club.test", uuid.Nil).Return(true, nil)

	_, err := f.service.Create(context.Background(), f.clubID, CreateUserRequest{
		Email: "admin@club.test", Password: testPassword, Name: "Otra", Role: "admin",
	})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	f.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_Update_OtherClubForbidden(t *testing.T) {
	f := newUserFixture()
	foreign := newTestUser(t, uuid.New(), identity.RoleAdmin)
	f.users.On("FindByID", mock.Anything, foreign.ID).Return(foreign, nil)

	_, err := f.service.Update(context.Background(), f.clubID, foreign.ID, UpdateUserRequest{
		Email: "x@club.test", Name: "X",
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestUserService_Update_PasswordRevokesSessions(t *testing.T) {
	f := newUserFixture()
	user := newTestUser(t, f.clubID, identity.RoleTreasurer)
	f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	f.users.On("ExistsByEmail", mock.Anything, "nuevo@club.test", user.ID).Return(false, nil)
	f.users.On("Save", mock.Anything, user).Return(nil)
	f.expectAudit(audit.ActionUpdate)

	resp, err := f.service.Update(context.Background(), f.clubID, user.ID, UpdateUserRequest{
		Email: "nuevo@club.test", Name: "Ana María", Password: "otraClave99",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", resp.Name)
	assert.True(t, user.VerifyPassword("otraClave99"))
	assert.True(t, f.sessionRevoked(t, user.ID))
}

func TestUserService_ChangeRole(t *testing.T) {
	t.Run("demotes when another admin exists", func(t *testing.T) {
		f := newUserFixture()
		user := newTestUser(t, f.clubID, identity.RoleAdmin)
		f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		f.users.On("CountActiveAdmins", mock.Anything, f.clubID, user.ID).Return(int64(1), nil)
		f.users.On("Save", mock.Anything, user).Return(nil)
		f.expectAudit(audit.ActionRoleChange)

		resp, err := f.service.ChangeRole(context.Background(), f.clubID, user.ID, ChangeRoleRequest{Role: "tesorero"})
		require.NoError(t, err)
		assert.Equal(t, "tesorero", resp.Role)
		assert.True(t, f.sessionRevoked(t, user.ID))
	})

	t.Run("rejects demoting the last admin", func(t *testing.T) {
		f := newUserFixture()
		user := newTestUser(t, f.clubID, identity.RoleAdmin)
		f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		f.users.On("CountActiveAdmins", mock.Anything, f.clubID, user.ID).Return(int64(0), nil)

		_, err := f.service.ChangeRole(context.Background(), f.clubID, user.ID, ChangeRoleRequest{Role: "tesorero"})
		assert.ErrorIs(t, err, identity.ErrLastAdmin)
		assert.Equal(t, identity.RoleAdmin, user.Role)
		f.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		assert.False(t, f.sessionRevoked(t, user.ID))
	})

	t.Run("same role is a no-op", func(t *testing.T) {
		f := newUserFixture()
		user := newTestUser(t, f.clubID, identity.RoleTreasurer)
		f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		resp, err := f.service.ChangeRole(context.Background(), f.clubID, user.ID, ChangeRoleRequest{Role: "tesorero"})
		require.NoError(t, err)
		assert.Equal(t, "tesorero", resp.Role)
		f.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestUserService_Deactivate(t *testing.T) {
	t.Run("last admin", func(t *testing.T) {
		f := newUserFixture()
		user := newTestUser(t, f.clubID, identity.RoleAdmin)
		f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		f.users.On("CountActiveAdmins", mock.Anything, f.clubID, user.ID).Return(int64(0), nil)

		_, err := f.service.Deactivate(context.Background(), f.clubID, user.ID)
		assert.ErrorIs(t, err, identity.ErrLastAdmin)
		assert.True(t, user.Active)
	})

	t.Run("treasurer", func(t *testing.T) {
		f := newUserFixture()
		user := newTestUser(t, f.clubID, identity.RoleTreasurer)
		f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		f.users.On("Save", mock.Anything, user).Return(nil)
		f.expectAudit(audit.ActionDeactivate)

		resp, err := f.service.Deactivate(context.Background(), f.clubID, user.ID)
		require.NoError(t, err)
		assert.False(t, resp.Active)
		assert.True(t, f.sessionRevoked(t, user.ID))
	})

	t.Run("already inactive", func(t *testing.T) {
		f := newUserFixture()
		user := newTestUser(t, f.clubID, identity.RoleTreasurer)
		require.NoError(t, user.Deactivate())
		f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		_, err := f.service.Deactivate(context.Background(), f.clubID, user.ID)
		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "ALREADY_INACTIVE", de.Code)
	})
}

func TestUserService_Activate(t *testing.T) {
	f := newUserFixture()
	user := newTestUser(t, f.clubID, identity.RoleTreasurer)
	require.NoError(t, user.Deactivate())
	f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	f.users.On("Save", mock.Anything, user).Return(nil)
	f.expectAudit(audit.ActionActivate)

	resp, err := f.service.Activate(context.Background(), f.clubID, user.ID)
	require.NoError(t, err)
	assert.True(t, resp.Active)
}

func TestUserService_Delete(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		f := newUserFixture()
		id := uuid.New()
		err := f.service.Delete(context.Background(), f.clubID, id, id)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("last admin", func(t *testing.T) {
		f := newUserFixture()
		user := newTestUser(t, f.clubID, identity.RoleAdmin)
		f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		f.users.On("CountActiveAdmins", mock.Anything, f.clubID, user.ID).Return(int64(0), nil)

		err := f.service.Delete(context.Background(), f.clubID, uuid.New(), user.ID)
		assert.ErrorIs(t, err, identity.ErrLastAdmin)
		f.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("other admin", func(t *testing.T) {
		f := newUserFixture()
		user := newTestUser(t, f.clubID, identity.RoleAdmin)
		f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		f.users.On("CountActiveAdmins", mock.Anything, f.clubID, user.ID).Return(int64(2), nil)
		f.users.On("Delete", mock.Anything, user.ID).Return(nil)
		f.expectAudit(audit.ActionDelete)

		require.NoError(t, f.service.Delete(context.Background(), f.clubID, uuid.New(), user.ID))
		assert.True(t, f.sessionRevoked(t, user.ID))
		f.users.AssertExpectations(t)
	})
}

func TestUserService_List(t *testing.T) {
	f := newUserFixture()
	user := newTestUser(t, f.clubID, identity.RoleAdmin)
	f.users.On("FindByClub", mock.Anything, f.clubID, mock.MatchedBy(func(filter identity.UserFilter) bool {
		return filter.Role != nil && *filter.Role == identity.RoleAdmin && filter.Page == 1 && filter.PageSize == 20
	})).Return([]identity.User{*user}, int64(1), nil)

	page, err := f.service.List(context.Background(), f.clubID, UserListFilter{Role: "admin"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, user.Email, page.Items[0].Email)
	assert.Equal(t, 1, page.TotalPages)
}
