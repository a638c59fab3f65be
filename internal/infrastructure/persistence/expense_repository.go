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

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByIDForClub finds an expense by ID within a club
func (r *GormExpenseRepository) FindByIDForClub(ctx context.Context, clubID, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).Scopes(tenant.ClubIDScope(clubID, id)).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForClub lists the expenses of a club
func (r *GormExpenseRepository) FindAllForClub(ctx context.Context, clubID uuid.UUID, filter finance.ExpenseFilter) ([]finance.Expense, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).Scopes(tenant.ClubScope(clubID))
	if filter.Search != "" {
		query = query.Where("LOWER(concept) LIKE ?", likePattern(filter.Search))
	}
	if filter.CampaignID != nil {
		query = query.Where("campaign_id = ?", *filter.CampaignID)
	}
	if filter.PaidByID != nil {
		query = query.Where("paid_by_id = ?", *filter.PaidByID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ExpenseModel
	if err := paginate(query, filter.Filter, ExpenseSortFields, "date").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return expensesToDomain(rows), total, nil
}

// FindByCampaigns returns every expense charged to the given campaigns
func (r *GormExpenseRepository) FindByCampaigns(ctx context.Context, clubID uuid.UUID, campaignIDs []uuid.UUID) ([]finance.Expense, error) {
	if len(campaignIDs) == 0 {
		return nil, nil
	}
	var rows []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.ClubScope(clubID)).
		Where("campaign_id IN ?", campaignIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return expensesToDomain(rows), nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return translateError(r.db.WithContext(ctx).Save(models.ExpenseModelFromDomain(expense)).Error)
}

// DeleteForClub deletes an expense within a club
func (r *GormExpenseRepository) DeleteForClub(ctx context.Context, clubID, id uuid.UUID) error {
	return rowsOrNotFound(r.db.WithContext(ctx).Scopes(tenant.ClubIDScope(clubID, id)).Delete(&models.ExpenseModel{}))
}

// SumForClub totals the expenses of a club
func (r *GormExpenseRepository) SumForClub(ctx context.Context, clubID uuid.UUID) (decimal.Decimal, error) {
	return sumColumn(r.db.WithContext(ctx).Model(&models.ExpenseModel{}).Scopes(tenant.ClubScope(clubID)), "amount")
}

func expensesToDomain(rows []models.ExpenseModel) []finance.Expense {
	out := make([]finance.Expense, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}
