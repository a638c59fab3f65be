package persistence

import (
	"context"

	"github.com/clubfinanzas/backend/internal/domain/finance"
	"github.com/clubfinanzas/backend/internal/infrastructure/persistence/models"
	"github.com/clubfinanzas/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormContributionRepository implements ContributionRepository using GORM
type GormContributionRepository struct {
	db *gorm.DB
}

// NewGormContributionRepository creates a new GormContributionRepository
func NewGormContributionRepository(db *gorm.DB) *GormContributionRepository {
	return &GormContributionRepository{db: db}
}

// FindByIDForClub finds a contribution by ID within a club
func (r *GormContributionRepository) FindByIDForClub(ctx context.Context, clubID, id uuid.UUID) (*finance.Contribution, error) {
	var model models.ContributionModel
	if err := r.db.WithContext(ctx).Scopes(tenant.ClubIDScope(clubID, id)).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForClub lists the contributions of a club
func (r *GormContributionRepository) FindAllForClub(ctx context.Context, clubID uuid.UUID, filter finance.ContributionFilter) ([]finance.Contribution, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ContributionModel{}).Scopes(tenant.ClubScope(clubID))
	if filter.Search != "" {
		query = query.Where("LOWER(member_name) LIKE ?", likePattern(filter.Search))
	}
	if filter.CampaignID != nil {
		query = query.Where("campaign_id = ?", *filter.CampaignID)
	}
	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ContributionModel
	if err := paginate(query, filter.Filter, ContributionSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return contributionsToDomain(rows), total, nil
}

// FindByCampaigns returns every contribution of the given campaigns
func (r *GormContributionRepository) FindByCampaigns(ctx context.Context, clubID uuid.UUID, campaignIDs []uuid.UUID) ([]finance.Contribution, error) {
	if len(campaignIDs) == 0 {
		return nil, nil
	}
	var rows []models.ContributionModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.ClubScope(clubID)).
		Where("campaign_id IN ?", campaignIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return contributionsToDomain(rows), nil
}

// Save creates or updates a contribution
func (r *GormContributionRepository) Save(ctx context.Context, contribution *finance.Contribution) error {
	return translateError(r.db.WithContext(ctx).Save(models.ContributionModelFromDomain(contribution)).Error)
}

// DeleteForClub deletes a contribution within a club
func (r *GormContributionRepository) DeleteForClub(ctx context.Context, clubID, id uuid.UUID) error {
	return rowsOrNotFound(r.db.WithContext(ctx).Scopes(tenant.ClubIDScope(clubID, id)).Delete(&models.ContributionModel{}))
}

// SumConfirmedForClub totals the confirmed contributions of a club
func (r *GormContributionRepository) SumConfirmedForClub(ctx context.Context, clubID uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ContributionModel{}).
		Scopes(tenant.ClubScope(clubID)).
		Where("status = ?", finance.ContributionStatusConfirmed)
	return sumColumn(query, "amount")
}

func contributionsToDomain(rows []models.ContributionModel) []finance.Contribution {
	out := make([]finance.Contribution, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}
