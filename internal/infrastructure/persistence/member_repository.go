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

// GormMemberRepository implements MemberRepository using GORM
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// FindByIDForClub finds a member by ID within a club
func (r *GormMemberRepository) FindByIDForClub(ctx context.Context, clubID, id uuid.UUID) (*finance.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).Scopes(tenant.ClubIDScope(clubID, id)).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByID finds a member by ID regardless of club
func (r *GormMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForClub lists the members of a club
func (r *GormMemberRepository) FindAllForClub(ctx context.Context, clubID uuid.UUID, filter finance.MemberFilter) ([]finance.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MemberModel{}).Scopes(tenant.ClubScope(clubID))
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.MemberModel
	if err := paginate(query, filter.Filter, MemberSortFields, "name").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	members := make([]finance.Member, len(rows))
	for i := range rows {
		members[i] = *rows[i].ToDomain()
	}
	return members, total, nil
}

// Save creates or updates a member
func (r *GormMemberRepository) Save(ctx context.Context, member *finance.Member) error {
	return translateError(r.db.WithContext(ctx).Save(models.MemberModelFromDomain(member)).Error)
}

// DeleteForClub deletes a member. Rows that referenced it keep their name
// snapshot and get a NULL member reference.
func (r *GormMemberRepository) DeleteForClub(ctx context.Context, clubID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		detach := []struct {
			model  any
			column string
		}{
			{&models.ContributionModel{}, "member_id"},
			{&models.ExpenseModel{}, "paid_by_id"},
			{&models.IncomeModel{}, "member_id"},
			{&models.DebtModel{}, "member_id"},
		}
		for _, d := range detach {
			if err := tx.Model(d.model).
				Scopes(tenant.ClubScope(clubID)).
				Where(d.column+" = ?", id).
				UpdateColumn(d.column, nil).Error; err != nil {
				return err
			}
		}
		return rowsOrNotFound(tx.Scopes(tenant.ClubIDScope(clubID, id)).Delete(&models.MemberModel{}))
	})
}

// SumDuesDebt totals the dues debt of the members of a club
func (r *GormMemberRepository) SumDuesDebt(ctx context.Context, clubID uuid.UUID) (decimal.Decimal, error) {
	return sumColumn(r.db.WithContext(ctx).Model(&models.MemberModel{}).Scopes(tenant.ClubScope(clubID)), "dues_debt")
}

// Count returns the number of members across all clubs
func (r *GormMemberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MemberModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// sumColumn returns COALESCE(SUM(column), 0) rounded to cents
func sumColumn(query *gorm.DB, column string) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(" + column + "), 0) AS total").Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return finance.RoundMoney(result.Total), nil
}
