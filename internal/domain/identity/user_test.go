package identity

import (
	"testing"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	clubID := uuid.New()

	t.Run("creates active club user", func(t *testing.T) {
		u, err := NewUser(clubID, " Tesorero@Club.com ", "secreto1", "Ana", RoleTreasurer)
		require.NoError(t, err)
		assert.Equal(t, "tesorero@club.com", u.Email)
		assert.Equal(t, RoleTreasurer, u.Role)
		assert.True(t, u.Active)
		assert.False(t, u.SuperAdmin)
		assert.True(t, u.BelongsTo(clubID))
		assert.NotEqual(t, "secreto1", u.PasswordHash)
		assert.True(t, u.VerifyPassword("secreto1"))
		assert.False(t, u.VerifyPassword("otra"))
	})

	tests := []struct {
		name     string
		clubID   uuid.UUID
		email    string
		password string
		userName string
		role     Role
		code     string
	}{
		{"missing club", uuid.Nil, "a@b.com", "secreto1", "Ana", RoleAdmin, "INVALID_CLUB"},
		{"bad role", clubID, "a@b.com", "secreto1", "Ana", Role("owner"), "INVALID_ROLE"},
		{"bad email", clubID, "not-an-email", "secreto1", "Ana", RoleAdmin, "INVALID_EMAIL"},
		{"short password", clubID, "a@b.com", "abc", "Ana", RoleAdmin, "INVALID_PASSWORD"},
		{"empty name", clubID, "a@b.com", "secreto1", " ", RoleAdmin, "INVALID_NAME"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.clubID, tt.email, tt.password, tt.userName, tt.role)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
		})
	}
}

func TestNewSuperAdmin(t *testing.T) {
	u, err := NewSuperAdmin("root@plataforma.com", "secreto1", "Root")
	require.NoError(t, err)
	assert.True(t, u.SuperAdmin)
	assert.Nil(t, u.ClubID)
	assert.False(t, u.BelongsTo(uuid.New()))
}

func TestUser_RoleAndStatus(t *testing.T) {
	u, err := NewUser(uuid.New(), "admin@club.com", "secreto1", "Admin", RoleAdmin)
	require.NoError(t, err)
	assert.True(t, u.IsActiveAdmin())

	require.NoError(t, u.ChangeRole(RoleTreasurer))
	assert.False(t, u.IsActiveAdmin())
	assert.Error(t, u.ChangeRole(Role("")))

	require.NoError(t, u.ChangeRole(RoleAdmin))
	require.NoError(t, u.Deactivate())
	assert.False(t, u.IsActiveAdmin())

	err = u.Deactivate()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_INACTIVE", domainErr.Code)

	u.Activate()
	assert.True(t, u.IsActiveAdmin())
}

func TestUser_UpdateProfileAndPassword(t *testing.T) {
	u, err := NewUser(uuid.New(), "admin@club.com", "secreto1", "Admin", RoleAdmin)
	require.NoError(t, err)
	version := u.Version

	require.NoError(t, u.UpdateProfile("Admin Nuevo", "NUEVO@club.com"))
	assert.Equal(t, "nuevo@club.com", u.Email)
	assert.Equal(t, "Admin Nuevo", u.Name)
	assert.Greater(t, u.Version, version)

	assert.Error(t, u.UpdateProfile("Admin", "bad"))

	require.NoError(t, u.SetPassword("otroSecreto"))
	assert.True(t, u.VerifyPassword("otroSecreto"))
	assert.False(t, u.VerifyPassword("secreto1"))

	u.RecordLogin()
	assert.NotNil(t, u.LastLoginAt)
}
