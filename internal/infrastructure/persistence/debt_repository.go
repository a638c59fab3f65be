package persistence

import (
	"context"
	"errors"

	"github.com/clubfinanzas/backend/internal/domain/finance"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/clubfinanzas/backend/internal/infrastructure/persistence/models"
	"github.com/clubfinanzas/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDebtRepository implements DebtRepository using GORM
type GormDebtRepository struct {
	db *gorm.DB
}

// NewGormDebtRepository creates a new GormDebtRepository
func NewGormDebtRepository(db *gorm.DB) *GormDebtRepository {
	return &GormDebtRepository{db: db}
}

// FindByIDForClub finds a debt by ID within a club
func (r *GormDebtRepository) FindByIDForClub(ctx context.Context, clubID, id uuid.UUID) (*finance.Debt, error) {
	var model models.DebtModel
	if err := r.db.WithContext(ctx).Scopes(tenant.ClubIDScope(clubID, id)).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForClub lists the debts of a club
func (r *GormDebtRepository) FindAllForClub(ctx context.Context, clubID uuid.UUID, filter finance.DebtFilter) ([]finance.Debt, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.DebtModel{}).Scopes(tenant.ClubScope(clubID))
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(concept) LIKE ? OR LOWER(member_name) LIKE ?", pattern, pattern)
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

	var rows []models.DebtModel
	if err := paginate(query, filter.Filter, DebtSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	debts := make([]finance.Debt, len(rows))
	for i := range rows {
		debts[i] = *rows[i].ToDomain()
	}
	return debts, total, nil
}

// Save creates a debt, or updates it with optimistic locking on version.
// The domain object already carries the incremented version.
func (r *GormDebtRepository) Save(ctx context.Context, debt *finance.Debt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.DebtModel
		err := tx.Select("version").Scopes(tenant.ClubIDScope(debt.ClubID, debt.ID)).First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return translateError(tx.Create(models.DebtModelFromDomain(debt)).Error)
		}
		if err != nil {
			return err
		}

		expectedVersion := debt.Version - 1
		if current.Version != expectedVersion {
			return shared.ErrConcurrencyConflict
		}

		result := tx.Model(&models.DebtModel{}).
			Where("id = ? AND club_id = ? AND version = ?", debt.ID, debt.ClubID, expectedVersion).
			Updates(map[string]any{
				"member_id":        debt.MemberID,
				"member_name":      debt.MemberName,
				"concept":          debt.Concept,
				"original_amount":  debt.OriginalAmount,
				"paid_amount":      debt.PaidAmount,
				"remaining_amount": debt.RemainingAmount,
				"status":           debt.Status,
				"notes":            debt.Notes,
				"version":          debt.Version,
				"updated_at":       debt.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

// SavePayment inserts the payment and moves the debt's balances in one
// transaction. The debt row is only updated while it still holds the
// version and paid amount the payment was computed from; a concurrent
// payment or edit of the original amount makes the update match no row,
// which rolls the payment back. The domain object already carries the
// incremented version.
func (r *GormDebtRepository) SavePayment(ctx context.Context, debt *finance.Debt, payment *finance.Payment, previousPaid decimal.Decimal) error {
	expectedVersion := debt.Version - 1
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.PaymentModelFromDomain(payment)).Error; err != nil {
			return err
		}

		result := tx.Model(&models.DebtModel{}).
			Where("id = ? AND club_id = ? AND version = ? AND paid_amount = ?",
				debt.ID, debt.ClubID, expectedVersion, previousPaid).
			Updates(map[string]any{
				"paid_amount":      debt.PaidAmount,
				"remaining_amount": debt.RemainingAmount,
				"status":           debt.Status,
				"version":          debt.Version,
				"updated_at":       debt.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

// FindPayments lists the payments of a debt, newest first
func (r *GormDebtRepository) FindPayments(ctx context.Context, clubID, debtID uuid.UUID) ([]finance.Payment, error) {
	var rows []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.ClubScope(clubID)).
		Where("debt_id = ?", debtID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	payments := make([]finance.Payment, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments, nil
}

// DeleteForClub deletes a debt and its payments
func (r *GormDebtRepository) DeleteForClub(ctx context.Context, clubID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(tenant.ClubScope(clubID)).
			Where("debt_id = ?", id).
			Delete(&models.PaymentModel{}).Error; err != nil {
			return err
		}
		return rowsOrNotFound(tx.Scopes(tenant.ClubIDScope(clubID, id)).Delete(&models.DebtModel{}))
	})
}

// SumRemaining totals the outstanding balance of the debts of a club
func (r *GormDebtRepository) SumRemaining(ctx context.Context, clubID uuid.UUID) (decimal.Decimal, error) {
	return sumColumn(r.db.WithContext(ctx).Model(&models.DebtModel{}).Scopes(tenant.ClubScope(clubID)), "remaining_amount")
}
