package persistence

import (
	"context"

	"github.com/clubfinanzas/backend/internal/domain/club"
	"github.com/clubfinanzas/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClubRepository implements ClubRepository using GORM
type GormClubRepository struct {
	db *gorm.DB
}

// NewGormClubRepository creates a new GormClubRepository
func NewGormClubRepository(db *gorm.DB) *GormClubRepository {
	return &GormClubRepository{db: db}
}

// FindByID finds a club by its ID
func (r *GormClubRepository) FindByID(ctx context.Context, id uuid.UUID) (*club.Club, error) {
	var model models.ClubModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a club by its public slug
func (r *GormClubRepository) FindBySlug(ctx context.Context, slug string) (*club.Club, error) {
	var model models.ClubModel
	if err := r.db.WithContext(ctx).First(&model, "slug = ?", slug).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists clubs matching the filter
func (r *GormClubRepository) FindAll(ctx context.Context, filter club.ClubFilter) ([]club.Club, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ClubModel{})
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", pattern, pattern)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ClubModel
	if err := paginate(query, filter.Filter, ClubSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	clubs := make([]club.Club, len(rows))
	for i := range rows {
		clubs[i] = *rows[i].ToDomain()
	}
	return clubs, total, nil
}

// ExistsBySlug checks whether a club other than excludeID uses the slug
func (r *GormClubRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ClubModel{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the number of clubs
func (r *GormClubRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ClubModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a club
func (r *GormClubRepository) Save(ctx context.Context, c *club.Club) error {
	return translateError(r.db.WithContext(ctx).Save(models.ClubModelFromDomain(c)).Error)
}

// clubOwnedTables lists the club-scoped tables, children before parents
var clubOwnedTables = []any{
	&models.PaymentModel{},
	&models.DebtModel{},
	&models.ContributionModel{},
	&models.ExpenseModel{},
	&models.IncomeModel{},
	&models.CampaignModel{},
	&models.MemberModel{},
	&models.ClubConfigModel{},
	&models.AuditLogModel{},
	&models.UserModel{},
}

// Delete removes a club and every record it owns in one transaction
func (r *GormClubRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range clubOwnedTables {
			if err := tx.Where("club_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return rowsOrNotFound(tx.Delete(&models.ClubModel{}, "id = ?", id))
	})
}

// GormClubConfigRepository implements ConfigRepository using GORM
type GormClubConfigRepository struct {
	db *gorm.DB
}

// NewGormClubConfigRepository creates a new GormClubConfigRepository
func NewGormClubConfigRepository(db *gorm.DB) *GormClubConfigRepository {
	return &GormClubConfigRepository{db: db}
}

// FindByClub returns the settings of a club
func (r *GormClubConfigRepository) FindByClub(ctx context.Context, clubID uuid.UUID) (*club.Config, error) {
	var model models.ClubConfigModel
	if err := r.db.WithContext(ctx).First(&model, "club_id = ?", clubID).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates the settings of a club
func (r *GormClubConfigRepository) Save(ctx context.Context, cfg *club.Config) error {
	return translateError(r.db.WithContext(ctx).Save(models.ClubConfigModelFromDomain(cfg)).Error)
}
