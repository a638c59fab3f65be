package shared

import (
	"github.com/google/uuid"
)

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

// IncrementVersion bumps the version and the update timestamp
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
	a.Touch()
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// ClubAggregateRoot is an aggregate owned by exactly one club.
// Every query on it must be scoped by ClubID.
type ClubAggregateRoot struct {
	BaseAggregateRoot
	ClubID uuid.UUID
}

// NewClubAggregateRoot creates a new club-scoped aggregate root
func NewClubAggregateRoot(clubID uuid.UUID) ClubAggregateRoot {
	return ClubAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		ClubID:            clubID,
	}
}

// BelongsTo reports whether the aggregate is owned by clubID
func (c *ClubAggregateRoot) BelongsTo(clubID uuid.UUID) bool {
	return c.ClubID == clubID
}
