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

// GormIncomeRepository implements IncomeRepository using GORM
type GormIncomeRepository struct {
	db *gorm.DB
}

// NewGormIncomeRepository creates a new GormIncomeRepository
func NewGormIncomeRepository(db *gorm.DB) *GormIncomeRepository {
	return &GormIncomeRepository{db: db}
}

// FindByIDForClub finds an income record by ID within a club
func (r *GormIncomeRepository) FindByIDForClub(ctx context.Context, clubID, id uuid.UUID) (*finance.Income, error) {
	var model models.IncomeModel
	if err := r.db.WithContext(ctx).Scopes(tenant.ClubIDScope(clubID, id)).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForClub lists the income of a club
func (r *GormIncomeRepository) FindAllForClub(ctx context.Context, clubID uuid.UUID, filter finance.IncomeFilter) ([]finance.Income, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.IncomeModel{}).Scopes(tenant.ClubScope(clubID))
	if filter.Search != "" {
		query = query.Where("LOWER(concept) LIKE ?", likePattern(filter.Search))
	}
	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
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

	var rows []models.IncomeModel
	if err := paginate(query, filter.Filter, IncomeSortFields, "date").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	incomes := make([]finance.Income, len(rows))
	for i := range rows {
		incomes[i] = *rows[i].ToDomain()
	}
	return incomes, total, nil
}

// Save creates or updates an income record
func (r *GormIncomeRepository) Save(ctx context.Context, income *finance.Income) error {
	return translateError(r.db.WithContext(ctx).Save(models.IncomeModelFromDomain(income)).Error)
}

// DeleteForClub deletes an income record within a club
func (r *GormIncomeRepository) DeleteForClub(ctx context.Context, clubID, id uuid.UUID) error {
	return rowsOrNotFound(r.db.WithContext(ctx).Scopes(tenant.ClubIDScope(clubID, id)).Delete(&models.IncomeModel{}))
}

// SumForClub totals the income of a club
func (r *GormIncomeRepository) SumForClub(ctx context.Context, clubID uuid.UUID) (decimal.Decimal, error) {
	return sumColumn(r.db.WithContext(ctx).Model(&models.IncomeModel{}).Scopes(tenant.ClubScope(clubID)), "amount")
}
