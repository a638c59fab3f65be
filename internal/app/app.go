// Package app wires repositories, services and HTTP handlers into a
// ready-to-serve gin engine.
package app

import (
	"context"
	"time"

	appaudit "github.com/clubfinanzas/backend/internal/application/audit"
	appclub "github.com/clubfinanzas/backend/internal/application/club"
	appfinance "github.com/clubfinanzas/backend/internal/application/finance"
	appidentity "github.com/clubfinanzas/backend/internal/application/identity"
	"github.com/clubfinanzas/backend/internal/application/tenant"
	"github.com/clubfinanzas/backend/internal/infrastructure/auth"
	"github.com/clubfinanzas/backend/internal/infrastructure/cache"
	"github.com/clubfinanzas/backend/internal/infrastructure/config"
	"github.com/clubfinanzas/backend/internal/infrastructure/persistence"
	"github.com/clubfinanzas/backend/internal/interfaces/http/handler"
	"github.com/clubfinanzas/backend/internal/interfaces/http/middleware"
	"github.com/clubfinanzas/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by /api/v1/system/info
const Version = "1.0.0"

// App is the assembled HTTP application
type App struct {
	Engine *gin.Engine
	JWT    *auth.JWTService

	stops []func()
}

// Stores are the shared key-value backends, Redis or in-memory
type Stores struct {
	// Blacklist revokes sessions on logout and on user changes
	Blacklist auth.TokenBlacklist
	// Idempotency deduplicates retried money movements
	Idempotency cache.IdempotencyStore
}

// idempotencyTTL is how long a used Idempotency-Key stays reserved
const idempotencyTTL = 24 * time.Hour

// New builds every repository, service and handler on top of db and
// registers the routes.
func New(cfg *config.Config, db *persistence.Database, stores Stores, log *zap.Logger) (*App, error) {
	middleware.SetupValidator()

	engine, stopLimiter, err := router.NewEngine(cfg, log)
	if err != nil {
		return nil, err
	}
	a := &App{Engine: engine, stops: []func(){stopLimiter}}

	gdb := db.DB
	clubRepo := persistence.NewGormClubRepository(gdb)
	configRepo := persistence.NewGormClubConfigRepository(gdb)
	userRepo := persistence.NewGormUserRepository(gdb)
	memberRepo := persistence.NewGormMemberRepository(gdb)
	campaignRepo := persistence.NewGormCampaignRepository(gdb)
	contributionRepo := persistence.NewGormContributionRepository(gdb)
	expenseRepo := persistence.NewGormExpenseRepository(gdb)
	incomeRepo := persistence.NewGormIncomeRepository(gdb)
	debtRepo := persistence.NewGormDebtRepository(gdb)
	auditRepo := persistence.NewGormAuditLogRepository(gdb)

	recorder := appaudit.NewRecorder(auditRepo, log)
	a.JWT = auth.NewJWTService(cfg.JWT)
	blacklist := stores.Blacklist
	extractor := auth.NewTokenExtractor(a.JWT, blacklist)
	resolver := tenant.NewResolver(clubRepo)

	authService := appidentity.NewAuthService(userRepo, clubRepo, a.JWT, blacklist, recorder, log)
	userService := appidentity.NewUserService(userRepo, blacklist, cfg.JWT.Expiration, recorder, log)
	memberService := appfinance.NewMemberService(memberRepo, recorder, log)
	campaignService := appfinance.NewCampaignService(campaignRepo, contributionRepo, expenseRepo, recorder, log)
	contributionService := appfinance.NewContributionService(contributionRepo, memberRepo, campaignRepo, recorder, log)
	expenseService := appfinance.NewExpenseService(expenseRepo, memberRepo, campaignRepo, recorder, log)
	incomeService := appfinance.NewIncomeService(incomeRepo, memberRepo, recorder, log)
	debtService := appfinance.NewDebtService(debtRepo, memberRepo, recorder, log)
	summaryService := appfinance.NewSummaryService(contributionRepo, expenseRepo, incomeRepo, debtRepo, memberRepo)
	clubService := appclub.NewService(clubRepo, configRepo, userRepo, memberRepo, recorder, log)
	configService := appclub.NewConfigService(clubRepo, configRepo, recorder)
	publicService := appclub.NewPublicService(resolver, configService, campaignService, summaryService)

	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authService, cfg.Cookie),
		User:         handler.NewUserHandler(userService),
		Member:       handler.NewMemberHandler(memberService),
		Campaign:     handler.NewCampaignHandler(campaignService),
		Contribution: handler.NewContributionHandler(contributionService),
		Expense:      handler.NewExpenseHandler(expenseService),
		Income:       handler.NewIncomeHandler(incomeService),
		Debt:         handler.NewDebtHandler(debtService),
		Summary:      handler.NewSummaryHandler(summaryService),
		Config:       handler.NewConfigHandler(configService),
		Audit:        handler.NewAuditHandler(appaudit.NewService(auditRepo)),
		Public:       handler.NewPublicHandler(publicService),
		Club:         handler.NewClubHandler(clubService),
		System:       handler.NewSystemHandler(cfg.App.Name, Version, db),
	}

	guards := router.Guards{
		Auth: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			Extractor: extractor,
			Logger:    log,
		}),
		OptionalAuth: middleware.OptionalJWTAuthMiddleware(extractor),
		ClubScope:    middleware.ClubScope(resolver, log),
	}
	if stores.Idempotency != nil {
		guards.Idempotent = middleware.Idempotent(stores.Idempotency, idempotencyTTL)
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		guards.LoginLimit = middleware.AuthRateLimit(limiter)
		a.stops = append(a.stops, limiter.Stop)
	}

	router.RegisterAPI(engine, handlers, guards)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	b := cfg.Bootstrap
	if err := appidentity.EnsureSuperAdmin(ctx, userRepo, b.SuperAdminEmail, b.SuperAdminPassword, b.SuperAdminName, log); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

// Close releases background resources such as rate limiter janitors
func (a *App) Close() {
	for _, stop := range a.stops {
		stop()
	}
}
