package club

import (
	"testing"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClub(t *testing.T) {
	creator := uuid.New()

	t.Run("creates active club on free plan", func(t *testing.T) {
		c, err := NewClub("  Sporting  ", "sporting", &creator)
		require.NoError(t, err)
		assert.Equal(t, "Sporting", c.Name)
		assert.Equal(t, "sporting", c.Slug)
		assert.True(t, c.Active)
		assert.Equal(t, PlanFree, c.Plan)
		assert.Equal(t, 1, c.Version)
		assert.Equal(t, &creator, c.CreatedBy)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewClub("  ", "sporting", nil)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_NAME", domainErr.Code)
	})

	t.Run("rejects malformed slug", func(t *testing.T) {
		_, err := NewClub("Sporting", "Sporting Club", nil)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SLUG", domainErr.Code)
	})
}

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"sporting", true},
		{"club-9-de-julio", true},
		{"2024", true},
		{"", false},
		{"Sporting", false},
		{"club_a", false},
		{"club a", false},
		{"peñarol", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestToSlug(t *testing.T) {
	assert.Equal(t, "club-atletico-penarol", ToSlug("Club Atlético Peñarol"))
	assert.Equal(t, "9-de-julio", ToSlug("  9 de Julio!! "))
	assert.Equal(t, "", ToSlug("¡¡!!"))
	assert.NoError(t, ValidateSlug(ToSlug("Deportivo Español")))
}

func TestClub_UpdateAndStatus(t *testing.T) {
	c, err := NewClub("Sporting", "sporting", nil)
	require.NoError(t, err)

	require.NoError(t, c.Update("Sporting FC", "https://cdn/logo.png", PlanPro))
	assert.Equal(t, "Sporting FC", c.Name)
	assert.Equal(t, PlanPro, c.Plan)
	assert.Equal(t, 2, c.Version)

	assert.Error(t, c.Update("Sporting FC", "", Plan("gold")))

	c.Deactivate()
	assert.False(t, c.Active)
	c.Deactivate()
	assert.Equal(t, 3, c.Version)
	c.Activate()
	assert.True(t, c.Active)

	require.NoError(t, c.ChangeSlug("sporting-fc"))
	assert.Equal(t, "sporting-fc", c.Slug)
}

func TestConfig_DefaultsAndUpdate(t *testing.T) {
	c, err := NewClub("Sporting", "sporting", nil)
	require.NoError(t, err)

	cfg := DefaultConfig(c)
	assert.Equal(t, c.ID, cfg.ClubID)
	assert.False(t, cfg.PublicTransparency)
	assert.Equal(t, "Sporting", cfg.DisplayName)

	require.NoError(t, cfg.Update(true, " Sporting de la Villa ", "Club de barrio"))
	assert.True(t, cfg.PublicTransparency)
	assert.Equal(t, "Sporting de la Villa", cfg.DisplayName)
}
