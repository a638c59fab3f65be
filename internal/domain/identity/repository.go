package identity

import (
	"context"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserFilter defines filtering options for user queries
type UserFilter struct {
	shared.Filter
	Role   *Role
	Active *bool
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email (case insensitive)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByClub lists the users of a club and returns the total count
	FindByClub(ctx context.Context, clubID uuid.UUID, filter UserFilter) ([]User, int64, error)

	// ExistsByEmail reports whether another user already uses the email
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)

	// CountActiveAdmins counts active admin-role users of a club, leaving out excludeID
	CountActiveAdmins(ctx context.Context, clubID, excludeID uuid.UUID) (int64, error)

	// Count returns the number of users across all clubs
	Count(ctx context.Context) (int64, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// Delete removes a user
	Delete(ctx context.Context, id uuid.UUID) error
}
