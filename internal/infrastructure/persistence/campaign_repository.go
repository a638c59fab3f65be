package persistence

import (
	"context"

	"github.com/clubfinanzas/backend/internal/domain/finance"
	"github.com/clubfinanzas/backend/internal/infrastructure/persistence/models"
	"github.com/clubfinanzas/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCampaignRepository implements CampaignRepository using GORM
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewGormCampaignRepository creates a new GormCampaignRepository
func NewGormCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// FindByIDForClub finds a campaign by ID within a club
func (r *GormCampaignRepository) FindByIDForClub(ctx context.Context, clubID, id uuid.UUID) (*finance.Campaign, error) {
	var model models.CampaignModel
	if err := r.db.WithContext(ctx).Scopes(tenant.ClubIDScope(clubID, id)).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByID finds a campaign by ID regardless of club
func (r *GormCampaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Campaign, error) {
	var model models.CampaignModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForClub lists the campaigns of a club
func (r *GormCampaignRepository) FindAllForClub(ctx context.Context, clubID uuid.UUID, filter finance.CampaignFilter) ([]finance.Campaign, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CampaignModel{}).Scopes(tenant.ClubScope(clubID))
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(filter.Search))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CampaignModel
	if err := paginate(query, filter.Filter, CampaignSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	campaigns := make([]finance.Campaign, len(rows))
	for i := range rows {
		campaigns[i] = *rows[i].ToDomain()
	}
	return campaigns, total, nil
}

// Save creates or updates a campaign
func (r *GormCampaignRepository) Save(ctx context.Context, campaign *finance.Campaign) error {
	return translateError(r.db.WithContext(ctx).Save(models.CampaignModelFromDomain(campaign)).Error)
}

// DeleteForClub deletes a campaign; its contributions and expenses stay
// without a campaign.
func (r *GormCampaignRepository) DeleteForClub(ctx context.Context, clubID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.ContributionModel{}, &models.ExpenseModel{}} {
			if err := tx.Model(model).
				Scopes(tenant.ClubScope(clubID)).
				Where("campaign_id = ?", id).
				UpdateColumn("campaign_id", nil).Error; err != nil {
				return err
			}
		}
		return rowsOrNotFound(tx.Scopes(tenant.ClubIDScope(clubID, id)).Delete(&models.CampaignModel{}))
	})
}
