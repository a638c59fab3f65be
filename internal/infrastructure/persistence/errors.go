package persistence

import (
	"errors"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps driver errors to domain errors
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	}
	return err
}

// rowsOrNotFound returns ErrNotFound when a write matched no row
func rowsOrNotFound(result *gorm.DB) error {
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
