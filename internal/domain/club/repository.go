package club

import (
	"context"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClubFilter extends the shared filter for club listing
type ClubFilter struct {
	shared.Filter
	Active *bool
}

// ClubRepository defines persistence operations for clubs
type ClubRepository interface {
	// FindByID finds a club by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Club, error)

	// FindBySlug finds a club by its public slug
	FindBySlug(ctx context.Context, slug string) (*Club, error)

	// FindAll lists clubs with paging and returns the total count
	FindAll(ctx context.Context, filter ClubFilter) ([]Club, int64, error)

	// ExistsBySlug reports whether another club already uses the slug
	ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// Count returns the number of clubs
	Count(ctx context.Context) (int64, error)

	// Save creates or updates a club
	Save(ctx context.Context, club *Club) error

	// Delete removes a club together with every record it owns
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConfigRepository defines persistence operations for club settings
type ConfigRepository interface {
	// FindByClub returns the settings of a club or shared.ErrNotFound
	FindByClub(ctx context.Context, clubID uuid.UUID) (*Config, error)

	// Save creates or updates the settings of a club
	Save(ctx context.Context, cfg *Config) error
}
