package finance

import (
	"context"
	"time"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemberFilter defines filtering options for member queries
type MemberFilter struct {
	shared.Filter
	Status *MemberStatus
}

// CampaignFilter defines filtering options for campaign queries
type CampaignFilter struct {
	shared.Filter
	Status *CampaignStatus
}

// ContributionFilter defines filtering options for contribution queries
type ContributionFilter struct {
	shared.Filter
	CampaignID *uuid.UUID
	MemberID   *uuid.UUID
	Status     *ContributionStatus
}

// ExpenseFilter defines filtering options for expense queries
type ExpenseFilter struct {
	shared.Filter
	CampaignID *uuid.UUID
	PaidByID   *uuid.UUID
	Category   string
	From       *time.Time
	To         *time.Time
}

// IncomeFilter defines filtering options for income queries
type IncomeFilter struct {
	shared.Filter
	MemberID *uuid.UUID
	Source   string
	From     *time.Time
	To       *time.Time
}

// DebtFilter defines filtering options for debt queries
type DebtFilter struct {
	shared.Filter
	MemberID *uuid.UUID
	Status   *DebtStatus
}

// MemberRepository defines the interface for member persistence
type MemberRepository interface {
	// FindByIDForClub finds a member by ID within a club
	FindByIDForClub(ctx context.Context, clubID, id uuid.UUID) (*Member, error)

	// FindByID finds a member by ID in any club; callers check ownership
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)

	// FindAllForClub lists the members of a club and returns the total count
	FindAllForClub(ctx context.Context, clubID uuid.UUID, filter MemberFilter) ([]Member, int64, error)

	// Save creates or updates a member
	Save(ctx context.Context, member *Member) error

	// DeleteForClub deletes a member and clears its references in
	// contributions, expenses, income and debts; name snapshots stay
	DeleteForClub(ctx context.Context, clubID, id uuid.UUID) error

	// SumDuesDebt totals the dues debt of all members of a club
	SumDuesDebt(ctx context.Context, clubID uuid.UUID) (decimal.Decimal, error)

	// Count returns the number of members across all clubs
	Count(ctx context.Context) (int64, error)
}

// CampaignRepository defines the interface for campaign persistence
type CampaignRepository interface {
	// FindByIDForClub finds a campaign by ID within a club
	FindByIDForClub(ctx context.Context, clubID, id uuid.UUID) (*Campaign, error)

	// FindByID finds a campaign by ID in any club; callers check ownership
	FindByID(ctx context.Context, id uuid.UUID) (*Campaign, error)

	// FindAllForClub lists the campaigns of a club and returns the total count
	FindAllForClub(ctx context.Context, clubID uuid.UUID, filter CampaignFilter) ([]Campaign, int64, error)

	// Save creates or updates a campaign
	Save(ctx context.Context, campaign *Campaign) error

	// DeleteForClub deletes a campaign and detaches its contributions and expenses
	DeleteForClub(ctx context.Context, clubID, id uuid.UUID) error
}

// ContributionRepository defines the interface for contribution persistence
type ContributionRepository interface {
	// FindByIDForClub finds a contribution by ID within a club
	FindByIDForClub(ctx context.Context, clubID, id uuid.UUID) (*Contribution, error)

	// FindAllForClub lists contributions of a club and returns the total count
	FindAllForClub(ctx context.Context, clubID uuid.UUID, filter ContributionFilter) ([]Contribution, int64, error)

	// FindByCampaigns returns every contribution of the given campaigns
	FindByCampaigns(ctx context.Context, clubID uuid.UUID, campaignIDs []uuid.UUID) ([]Contribution, error)

	// Save creates or updates a contribution
	Save(ctx context.Context, contribution *Contribution) error

	// DeleteForClub deletes a contribution within a club
	DeleteForClub(ctx context.Context, clubID, id uuid.UUID) error

	// SumConfirmedForClub totals the confirmed (aportado) contributions of a club
	SumConfirmedForClub(ctx context.Context, clubID uuid.UUID) (decimal.Decimal, error)
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByIDForClub finds an expense by ID within a club
	FindByIDForClub(ctx context.Context, clubID, id uuid.UUID) (*Expense, error)

	// FindAllForClub lists expenses of a club and returns the total count
	FindAllForClub(ctx context.Context, clubID uuid.UUID, filter ExpenseFilter) ([]Expense, int64, error)

	// FindByCampaigns returns every expense charged to the given campaigns
	FindByCampaigns(ctx context.Context, clubID uuid.UUID, campaignIDs []uuid.UUID) ([]Expense, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// DeleteForClub deletes an expense within a club
	DeleteForClub(ctx context.Context, clubID, id uuid.UUID) error

	// SumForClub totals all expenses of a club
	SumForClub(ctx context.Context, clubID uuid.UUID) (decimal.Decimal, error)
}

// IncomeRepository defines the interface for income persistence
type IncomeRepository interface {
	// FindByIDForClub finds an income record by ID within a club
	FindByIDForClub(ctx context.Context, clubID, id uuid.UUID) (*Income, error)

	// FindAllForClub lists income of a club and returns the total count
	FindAllForClub(ctx context.Context, clubID uuid.UUID, filter IncomeFilter) ([]Income, int64, error)

	// Save creates or updates an income record
	Save(ctx context.Context, income *Income) error

	// DeleteForClub deletes an income record within a club
	DeleteForClub(ctx context.Context, clubID, id uuid.UUID) error

	// SumForClub totals all income of a club
	SumForClub(ctx context.Context, clubID uuid.UUID) (decimal.Decimal, error)
}

// DebtRepository defines the interface for debt and payment persistence
type DebtRepository interface {
	// FindByIDForClub finds a debt by ID within a club
	FindByIDForClub(ctx context.Context, clubID, id uuid.UUID) (*Debt, error)

	// FindAllForClub lists debts of a club and returns the total count
	FindAllForClub(ctx context.Context, clubID uuid.UUID, filter DebtFilter) ([]Debt, int64, error)

	// Save creates a debt or updates it guarded by its version
	Save(ctx context.Context, debt *Debt) error

	// SavePayment inserts the payment and applies the debt's new paid,
	// remaining and status in one transaction. The update only matches
	// while the stored paid amount still equals previousPaid; otherwise
	// nothing is written and shared.ErrConcurrencyConflict is returned.
	SavePayment(ctx context.Context, debt *Debt, payment *Payment, previousPaid decimal.Decimal) error

	// FindPayments lists the payments of a debt, newest first
	FindPayments(ctx context.Context, clubID, debtID uuid.UUID) ([]Payment, error)

	// DeleteForClub deletes a debt and all its payments
	DeleteForClub(ctx context.Context, clubID, id uuid.UUID) error

	// SumRemaining totals the outstanding balance of all debts of a club
	SumRemaining(ctx context.Context, clubID uuid.UUID) (decimal.Decimal, error)
}
