package finance

import (
	"context"
	"testing"

	"github.com/clubfinanzas/backend/internal/application/audit"
	"github.com/clubfinanzas/backend/internal/domain/club"
	domainaudit "github.com/clubfinanzas/backend/internal/domain/audit"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/clubfinanzas/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db            *gorm.DB
	club          *club.Club
	auditRepo     domainaudit.LogRepository
	members       *MemberService
	campaigns     *CampaignService
	contributions *ContributionService
	expenses      *ExpenseService
	incomes       *IncomeService
	debts         *DebtService
	summary       *SummaryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := persistence.OpenSQLiteMemory()
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	logger := zap.NewNop()
	memberRepo := persistence.NewGormMemberRepository(db)
	campaignRepo := persistence.NewGormCampaignRepository(db)
	contributionRepo := persistence.NewGormContributionRepository(db)
	expenseRepo := persistence.NewGormExpenseRepository(db)
	incomeRepo := persistence.NewGormIncomeRepository(db)
	debtRepo := persistence.NewGormDebtRepository(db)
	auditRepo := persistence.NewGormAuditLogRepository(db)
	recorder := audit.NewRecorder(auditRepo, logger)

	f := &fixture{
		db:            db,
		auditRepo:     auditRepo,
		members:       NewMemberService(memberRepo, recorder, logger),
		campaigns:     NewCampaignService(campaignRepo, contributionRepo, expenseRepo, recorder, logger),
		contributions: NewContributionService(contributionRepo, memberRepo, campaignRepo, recorder, logger),
		expenses:      NewExpenseService(expenseRepo, memberRepo, campaignRepo, recorder, logger),
		incomes:       NewIncomeService(incomeRepo, memberRepo, recorder, logger),
		debts:         NewDebtService(debtRepo, memberRepo, recorder, logger),
		summary:       NewSummaryService(contributionRepo, expenseRepo, incomeRepo, debtRepo, memberRepo),
	}
	f.club = f.newClub(t, "club-norte")
	return f
}

func (f *fixture) newClub(t *testing.T, slug string) *club.Club {
	t.Helper()
	c, err := club.NewClub("Club "+slug, slug, nil)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormClubRepository(f.db).Save(context.Background(), c))
	return c
}

func (f *fixture) newMember(t *testing.T, clubID uuid.UUID, name string) *MemberResponse {
	t.Helper()
	m, err := f.members.Create(context.Background(), clubID, MemberRequest{Name: name})
	require.NoError(t, err)
	return m
}

func (f *fixture) auditCount(t *testing.T, action, entityType string) int64 {
	t.Helper()
	_, total, err := f.auditRepo.FindAllForClub(context.Background(), f.club.ID, domainaudit.LogFilter{
		Filter:     shared.Filter{Page: 1, PageSize: 100},
		Action:     action,
		EntityType: entityType,
	})
	require.NoError(t, err)
	return total
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
