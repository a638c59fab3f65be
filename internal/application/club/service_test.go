package club

import (
	"context"
	"testing"

	"github.com/clubfinanzas/backend/internal/application/audit"
	appfinance "github.com/clubfinanzas/backend/internal/application/finance"
	"github.com/clubfinanzas/backend/internal/application/tenant"
	"github.com/clubfinanzas/backend/internal/domain/club"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/clubfinanzas/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db            *gorm.DB
	clubs         *Service
	configs       *ConfigService
	public        *PublicService
	members       *appfinance.MemberService
	campaigns     *appfinance.CampaignService
	contributions *appfinance.ContributionService
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
	clubRepo := persistence.NewGormClubRepository(db)
	configRepo := persistence.NewGormClubConfigRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	memberRepo := persistence.NewGormMemberRepository(db)
	campaignRepo := persistence.NewGormCampaignRepository(db)
	contributionRepo := persistence.NewGormContributionRepository(db)
	expenseRepo := persistence.NewGormExpenseRepository(db)
	incomeRepo := persistence.NewGormIncomeRepository(db)
	debtRepo := persistence.NewGormDebtRepository(db)
	recorder := audit.NewRecorder(persistence.NewGormAuditLogRepository(db), logger)

	campaigns := appfinance.NewCampaignService(campaignRepo, contributionRepo, expenseRepo, recorder, logger)
	summary := appfinance.NewSummaryService(contributionRepo, expenseRepo, incomeRepo, debtRepo, memberRepo)
	configs := NewConfigService(clubRepo, configRepo, recorder)

	return &fixture{
		db:            db,
		clubs:         NewService(clubRepo, configRepo, userRepo, memberRepo, recorder, logger),
		configs:       configs,
		public:        NewPublicService(tenant.NewResolver(clubRepo), configs, campaigns, summary),
		members:       appfinance.NewMemberService(memberRepo, recorder, logger),
		campaigns:     campaigns,
		contributions: appfinance.NewContributionService(contributionRepo, memberRepo, campaignRepo, recorder, logger),
	}
}

func code(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func TestService_CreateClub(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.clubs.Create(ctx, nil, CreateClubRequest{Name: "Club Atlético Peñarol"})
	require.NoError(t, err)
	assert.Equal(t, "club-atletico-penarol", created.Slug)
	assert.True(t, created.Active)
	assert.Equal(t, "free", created.Plan)

	_, err = f.clubs.Create(ctx, nil, CreateClubRequest{Name: "Otro", Slug: "club-atletico-penarol"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, err = f.clubs.Create(ctx, nil, CreateClubRequest{Name: "Malo", Slug: "Con Espacios"})
	assert.Equal(t, "INVALID_SLUG", code(t, err))

	withPlan, err := f.clubs.Create(ctx, nil, CreateClubRequest{Name: "Pro FC", Slug: "pro-fc", Plan: "pro"})
	require.NoError(t, err)
	assert.Equal(t, "pro", withPlan.Plan)

	cfg, err := f.configs.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Club Atlético Peñarol", cfg.DisplayName)
	assert.False(t, cfg.PublicTransparency)
}

func TestService_UpdateClub(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, err := f.clubs.Create(ctx, nil, CreateClubRequest{Name: "A", Slug: "club-a"})
	require.NoError(t, err)
	_, err = f.clubs.Create(ctx, nil, CreateClubRequest{Name: "B", Slug: "club-b"})
	require.NoError(t, err)

	_, err = f.clubs.Update(ctx, a.ID, UpdateClubRequest{Name: "A", Slug: "club-b"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	inactive := false
	updated, err := f.clubs.Update(ctx, a.ID, UpdateClubRequest{Name: "A renombrado", Slug: "club-a2", Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "club-a2", updated.Slug)
	assert.False(t, updated.Active)

	active := true
	page, err := f.clubs.List(ctx, ClubListFilter{Active: &active})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	_, err = f.clubs.Update(ctx, uuid.New(), UpdateClubRequest{Name: "X"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_CreateAdminAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.clubs.Create(ctx, nil, CreateClubRequest{Name: "Norte", Slug: "norte"})
	require.NoError(t, err)

	admin, err := f.clubs.CreateAdmin(ctx, c.ID, CreateAdminRequest{Email: "Admin@Norte.test", Password: "secreto123", Name: "Admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Role)
	assert.Equal(t, "admin@norte.test", admin.Email)

	_, err = f.clubs.CreateAdmin(ctx, c.ID, CreateAdminRequest{Email: "admin@norte.test", Password: "secreto123", Name: "Dup"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, err = f.clubs.CreateAdmin(ctx, uuid.New(), CreateAdminRequest{Email: "x@norte.test", Password: "secreto123", Name: "X"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.members.Create(ctx, c.ID, appfinance.MemberRequest{Name: "Socio"})
	require.NoError(t, err)

	stats, err := f.clubs.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Clubs)
	assert.Equal(t, int64(1), stats.ActiveClubs)
	assert.Equal(t, int64(1), stats.Users)
	assert.Equal(t, int64(1), stats.Members)
}

func TestService_DeleteClubCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.clubs.Create(ctx, nil, CreateClubRequest{Name: "Borrable", Slug: "borrable"})
	require.NoError(t, err)
	_, err = f.clubs.CreateAdmin(ctx, c.ID, CreateAdminRequest{Email: "a@b.test", Password: "secreto123", Name: "A"})
	require.NoError(t, err)
	_, err = f.members.Create(ctx, c.ID, appfinance.MemberRequest{Name: "Socio"})
	require.NoError(t, err)

	require.NoError(t, f.clubs.Delete(ctx, c.ID))

	stats, err := f.clubs.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Clubs)
	assert.Zero(t, stats.Users)
	assert.Zero(t, stats.Members)

	assert.ErrorIs(t, f.clubs.Delete(ctx, c.ID), shared.ErrNotFound)
}

func TestConfigService_LazyDefaultsAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// a club stored without its config row
	c, err := club.NewClub("Sin Config", "sin-config", nil)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormClubRepository(f.db).Save(ctx, c))

	cfg, err := f.configs.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sin Config", cfg.DisplayName)

	on := true
	updated, err := f.configs.Update(ctx, c.ID, UpdateConfigRequest{PublicTransparency: &on, DisplayName: "Club SC", Description: "Fútbol infantil"})
	require.NoError(t, err)
	assert.True(t, updated.PublicTransparency)

	again, err := f.configs.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Club SC", again.DisplayName)
	assert.Equal(t, "Fútbol infantil", again.Description)

	_, err = f.configs.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPublicService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.clubs.Create(ctx, nil, CreateClubRequest{Name: "Publico", Slug: "publico"})
	require.NoError(t, err)
	m, err := f.members.Create(ctx, c.ID, appfinance.MemberRequest{Name: "Socio"})
	require.NoError(t, err)
	goal := decimal.NewFromInt(100)
	campaign, err := f.campaigns.Create(ctx, c.ID, appfinance.CampaignRequest{Name: "Camisetas", Goal: &goal})
	require.NoError(t, err)
	_, err = f.contributions.Create(ctx, c.ID, appfinance.ContributionRequest{MemberID: m.ID, CampaignID: &campaign.ID, Amount: decimal.NewFromInt(150)})
	require.NoError(t, err)

	header, err := f.public.Club(ctx, "publico")
	require.NoError(t, err)
	assert.Equal(t, "Publico", header.Name)
	assert.False(t, header.PublicTransparency)

	list, err := f.public.Campaigns(ctx, "publico", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(100), list[0].Percent)

	active, err := f.public.Campaigns(ctx, "publico", "cerrada")
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = f.public.Campaigns(ctx, "publico", "rota")
	assert.Equal(t, "INVALID_STATUS", code(t, err))

	detail, err := f.public.Campaign(ctx, "publico", campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), detail.Percent)

	// the admin view keeps the unclamped figure
	adminView, err := f.campaigns.Get(ctx, c.ID, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(150), adminView.Percent)

	_, err = f.public.Summary(ctx, "publico")
	assert.ErrorIs(t, err, shared.ErrForbidden)

	on := true
	_, err = f.configs.Update(ctx, c.ID, UpdateConfigRequest{PublicTransparency: &on})
	require.NoError(t, err)
	summary, err := f.public.Summary(ctx, "publico")
	require.NoError(t, err)
	assert.Equal(t, "150.00", summary.TotalContributed.StringFixed(2))

	_, err = f.public.Club(ctx, "no-existe")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	off := false
	_, err = f.clubs.Update(ctx, c.ID, UpdateClubRequest{Name: "Publico", Active: &off})
	require.NoError(t, err)
	_, err = f.public.Club(ctx, "publico")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPublicService_CampaignOfOtherClub(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.clubs.Create(ctx, nil, CreateClubRequest{Name: "Uno", Slug: "uno"})
	require.NoError(t, err)
	dos, err := f.clubs.Create(ctx, nil, CreateClubRequest{Name: "Dos", Slug: "dos"})
	require.NoError(t, err)
	goal := decimal.NewFromInt(10)
	foreign, err := f.campaigns.Create(ctx, dos.ID, appfinance.CampaignRequest{Name: "Ajena", Goal: &goal})
	require.NoError(t, err)

	_, err = f.public.Campaign(ctx, "uno", foreign.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
