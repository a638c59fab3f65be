package persistence

import (
	"github.com/clubfinanzas/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// AutoMigrate creates the schema from the GORM models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}
