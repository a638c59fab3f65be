package finance

import (
	"context"

	"github.com/clubfinanzas/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SummaryService computes the club-wide financial totals
type SummaryService struct {
	contributionRepo finance.ContributionRepository
	expenseRepo      finance.ExpenseRepository
	incomeRepo       finance.IncomeRepository
	debtRepo         finance.DebtRepository
	memberRepo       finance.MemberRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(
	contributionRepo finance.ContributionRepository,
	expenseRepo finance.ExpenseRepository,
	incomeRepo finance.IncomeRepository,
	debtRepo finance.DebtRepository,
	memberRepo finance.MemberRepository,
) *SummaryService {
	return &SummaryService{
		contributionRepo: contributionRepo,
		expenseRepo:      expenseRepo,
		incomeRepo:       incomeRepo,
		debtRepo:         debtRepo,
		memberRepo:       memberRepo,
	}
}

// SummaryResponse are the totals of a club.
// Balance = confirmed contributions + income - expenses.
type SummaryResponse struct {
	TotalContributed decimal.Decimal `json:"totalAportado"`
	TotalIncome      decimal.Decimal `json:"totalIngresos"`
	TotalExpenses    decimal.Decimal `json:"totalGastos"`
	Balance          decimal.Decimal `json:"balance"`
	OutstandingDebt  decimal.Decimal `json:"deudaPendiente"`
	DuesDebt         decimal.Decimal `json:"deudaCuotas"`
}

// Summary returns the financial totals of a club
func (s *SummaryService) Summary(ctx context.Context, clubID uuid.UUID) (*SummaryResponse, error) {
	contributed, err := s.contributionRepo.SumConfirmedForClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	income, err := s.incomeRepo.SumForClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.SumForClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.debtRepo.SumRemaining(ctx, clubID)
	if err != nil {
		return nil, err
	}
	dues, err := s.memberRepo.SumDuesDebt(ctx, clubID)
	if err != nil {
		return nil, err
	}

	return &SummaryResponse{
		TotalContributed: finance.RoundMoney(contributed),
		TotalIncome:      finance.RoundMoney(income),
		TotalExpenses:    finance.RoundMoney(expenses),
		Balance:          finance.RoundMoney(contributed.Add(income).Sub(expenses)),
		OutstandingDebt:  finance.RoundMoney(outstanding),
		DuesDebt:         finance.RoundMoney(dues),
	}, nil
}
