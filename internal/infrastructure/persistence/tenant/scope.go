// Package tenant scopes GORM queries to a single club.
//
// Every club-owned table carries a club_id column. Repositories build their
// queries through ClubScope so a row of another club can never be read,
// updated or deleted by accident:
//
//	db.WithContext(ctx).Scopes(tenant.ClubScope(clubID)).Find(&members)
package tenant

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClubColumn is the column that owns a row
const ClubColumn = "club_id"

// ErrClubIDRequired is returned when a scoped query has no club
var ErrClubIDRequired = errors.New("club_id is required for a scoped query")

// ClubScope applies club filtering to GORM queries. A nil club ID makes
// the query fail instead of silently matching every club.
func ClubScope(clubID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if clubID == uuid.Nil {
			_ = db.AddError(ErrClubIDRequired)
			return db
		}
		return db.Where(ClubColumn+" = ?", clubID)
	}
}

// ClubIDScope filters by club and primary key in one step
func ClubIDScope(clubID, id uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if clubID == uuid.Nil {
			_ = db.AddError(ErrClubIDRequired)
			return db
		}
		return db.Where(ClubColumn+" = ? AND id = ?", clubID, id)
	}
}
