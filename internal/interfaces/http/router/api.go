package router

import (
	"github.com/clubfinanzas/backend/internal/domain/identity"
	"github.com/clubfinanzas/backend/internal/interfaces/http/handler"
	"github.com/clubfinanzas/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler of the API
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Member       *handler.MemberHandler
	Campaign     *handler.CampaignHandler
	Contribution *handler.ContributionHandler
	Expense      *handler.ExpenseHandler
	Income       *handler.IncomeHandler
	Debt         *handler.DebtHandler
	Summary      *handler.SummaryHandler
	Config       *handler.ConfigHandler
	Audit        *handler.AuditHandler
	Public       *handler.PublicHandler
	Club         *handler.ClubHandler
	System       *handler.SystemHandler
}

// Guards are the authentication middleware the route groups are wrapped in
type Guards struct {
	// Auth requires a valid session
	Auth gin.HandlerFunc
	// OptionalAuth loads a session when one is presented
	OptionalAuth gin.HandlerFunc
	// ClubScope resolves the acting club of the session
	ClubScope gin.HandlerFunc
	// LoginLimit throttles credential attempts; nil disables it
	LoginLimit gin.HandlerFunc
	// Idempotent deduplicates retried money movements; nil disables it
	Idempotent gin.HandlerFunc
}

// with prepends mw to h when mw is set
func with(mw, h gin.HandlerFunc) []gin.HandlerFunc {
	if mw == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{mw, h}
}

// RegisterAPI mounts /health and the whole /api/v1 surface on the engine
func RegisterAPI(engine *gin.Engine, h Handlers, g Guards) {
	engine.GET("/health", h.System.Health)

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Register(authRoutes(h, g)).
		Register(clubRoutes(h, g)).
		Register(publicRoutes(h)).
		Register(superAdminRoutes(h, g))

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)
	r.Register(system)

	r.Setup()
}

func authRoutes(h Handlers, g Guards) *DomainGroup {
	routes := NewDomainGroup("auth", "/auth")
	routes.POST("/login", with(g.LoginLimit, h.Auth.Login)...)
	routes.POST("/logout", g.OptionalAuth, h.Auth.Logout)
	routes.GET("/me", g.Auth, h.Auth.Me)
	return routes
}

// clubRoutes are the authenticated routes scoped to the caller's club
func clubRoutes(h Handlers, g Guards) *DomainGroup {
	routes := NewDomainGroup("club", "").Use(g.Auth, g.ClubScope)

	campaigns := routes.Group("colectas", "/colectas")
	campaigns.GET("", h.Campaign.List)
	campaigns.POST("", h.Campaign.Create)
	campaigns.GET("/aportes", h.Contribution.List)
	campaigns.POST("/aportes", with(g.Idempotent, h.Contribution.Create)...)
	campaigns.GET("/aportes/:id", h.Contribution.Get)
	campaigns.PUT("/aportes/:id", h.Contribution.Update)
	campaigns.DELETE("/aportes/:id", h.Contribution.Delete)
	campaigns.GET("/:id", h.Campaign.Get)
	campaigns.PUT("/:id", h.Campaign.Update)
	campaigns.DELETE("/:id", h.Campaign.Delete)

	members := routes.Group("miembros", "/miembros")
	members.GET("", h.Member.List)
	members.POST("", h.Member.Create)
	members.GET("/:id", h.Member.Get)
	members.PUT("/:id", h.Member.Update)
	members.DELETE("/:id", h.Member.Delete)

	expenses := routes.Group("gastos", "/gastos")
	expenses.GET("", h.Expense.List)
	expenses.POST("", with(g.Idempotent, h.Expense.Create)...)
	expenses.GET("/:id", h.Expense.Get)
	expenses.PUT("/:id", h.Expense.Update)
	expenses.DELETE("/:id", h.Expense.Delete)

	incomes := routes.Group("ingresos", "/ingresos")
	incomes.GET("", h.Income.List)
	incomes.POST("", with(g.Idempotent, h.Income.Create)...)
	incomes.GET("/:id", h.Income.Get)
	incomes.PUT("/:id", h.Income.Update)
	incomes.DELETE("/:id", h.Income.Delete)

	debts := routes.Group("deudas", "/deudas")
	debts.GET("", h.Debt.List)
	debts.POST("", h.Debt.Create)
	debts.GET("/:id", h.Debt.Get)
	debts.PUT("/:id", h.Debt.Update)
	debts.DELETE("/:id", h.Debt.Delete)
	debts.POST("/:id/pago", with(g.Idempotent, h.Debt.RegisterPayment)...)
	debts.GET("/:id/pagos", h.Debt.ListPayments)

	routes.GET("/finanzas/resumen", h.Summary.Get)
	routes.GET("/configuracion", h.Config.Get)
	routes.PUT("/configuracion", h.Config.Update)

	users := routes.Group("usuarios", "/usuarios").Use(middleware.RequireRole(identity.RoleAdmin))
	users.GET("", h.User.List)
	users.POST("", h.User.Create)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", h.User.Delete)
	users.PATCH("/:id/rol", h.User.ChangeRole)
	users.PATCH("/:id/desactivar", h.User.Deactivate)
	users.PATCH("/:id/activar", h.User.Activate)

	audit := routes.Group("auditoria", "/auditoria").Use(middleware.RequireRole(identity.RoleAdmin))
	audit.GET("", h.Audit.List)

	return routes
}

func publicRoutes(h Handlers) *DomainGroup {
	routes := NewDomainGroup("public", "/public/clubes/:slug")
	routes.GET("", h.Public.Club)
	routes.GET("/colectas", h.Public.Campaigns)
	routes.GET("/colectas/:id", h.Public.Campaign)
	routes.GET("/resumen", h.Public.Summary)
	return routes
}

func superAdminRoutes(h Handlers, g Guards) *DomainGroup {
	routes := NewDomainGroup("super-admin", "/super-admin").Use(g.Auth, middleware.RequireSuperAdmin())
	routes.GET("/clubes", h.Club.List)
	routes.POST("/clubes", h.Club.Create)
	routes.GET("/clubes/:id", h.Club.Get)
	routes.PUT("/clubes/:id", h.Club.Update)
	routes.DELETE("/clubes/:id", h.Club.Delete)
	routes.POST("/clubes/:id/admins", h.Club.CreateAdmin)
	routes.GET("/estadisticas", h.Club.Stats)
	return routes
}
