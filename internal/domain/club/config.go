package club

import (
	"strings"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Config holds the per-club settings shown on the public page.
// There is at most one Config per club.
type Config struct {
	shared.BaseEntity
	ClubID             uuid.UUID
	PublicTransparency bool
	DisplayName        string
	Description        string
}

// DefaultConfig returns the settings a club starts with
func DefaultConfig(c *Club) *Config {
	return &Config{
		BaseEntity:         shared.NewBaseEntity(),
		ClubID:             c.ID,
		PublicTransparency: false,
		DisplayName:        c.Name,
	}
}

// Update replaces the public settings
func (cfg *Config) Update(transparency bool, displayName, description string) error {
	displayName = strings.TrimSpace(displayName)
	if len(displayName) > 200 {
		return shared.NewDomainError("INVALID_NAME", "El nombre visible no puede superar 200 caracteres")
	}
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "La descripción no puede superar 2000 caracteres")
	}

	cfg.PublicTransparency = transparency
	cfg.DisplayName = displayName
	cfg.Description = strings.TrimSpace(description)
	cfg.Touch()
	return nil
}
