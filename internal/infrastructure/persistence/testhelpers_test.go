package persistence

import (
	"context"
	"testing"

	"github.com/clubfinanzas/backend/internal/domain/club"
	"github.com/clubfinanzas/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLiteMemory()
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedClub(t *testing.T, db *gorm.DB, slug string) *club.Club {
	t.Helper()
	c, err := club.NewClub("Club "+slug, slug, nil)
	require.NoError(t, err)
	require.NoError(t, NewGormClubRepository(db).Save(context.Background(), c))
	return c
}

func seedMember(t *testing.T, db *gorm.DB, c *club.Club, name string) *finance.Member {
	t.Helper()
	m, err := finance.NewMember(c.ID, name, "", "", decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, NewGormMemberRepository(db).Save(context.Background(), m))
	return m
}

func seedCampaign(t *testing.T, db *gorm.DB, c *club.Club, goal string) *finance.Campaign {
	t.Helper()
	campaign, err := finance.NewCampaign(c.ID, "Camisetas", "", dec(goal), nil)
	require.NoError(t, err)
	require.NoError(t, NewGormCampaignRepository(db).Save(context.Background(), campaign))
	return campaign
}

func seedContribution(t *testing.T, db *gorm.DB, c *club.Club, m *finance.Member, campaign *finance.Campaign, amount string, status finance.ContributionStatus) *finance.Contribution {
	t.Helper()
	contribution, err := finance.NewContribution(c.ID, finance.ContributionInput{
		Member:   m,
		Campaign: campaign,
		Amount:   dec(amount),
		Status:   status,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormContributionRepository(db).Save(context.Background(), contribution))
	return contribution
}

func seedDebt(t *testing.T, db *gorm.DB, c *club.Club, m *finance.Member, amount string) *finance.Debt {
	t.Helper()
	debt, err := finance.NewDebt(c.ID, m, "Cuota anual", dec(amount), "")
	require.NoError(t, err)
	require.NoError(t, NewGormDebtRepository(db).Save(context.Background(), debt))
	return debt
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
