package handler

import (
	"net/http"
	"strings"
	"time"

	appaudit "github.com/clubfinanzas/backend/internal/application/audit"
	"github.com/clubfinanzas/backend/internal/application/identity"
	"github.com/clubfinanzas/backend/internal/infrastructure/auth"
	"github.com/clubfinanzas/backend/internal/infrastructure/config"
	"github.com/clubfinanzas/backend/internal/interfaces/http/dto"
	"github.com/clubfinanzas/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
	cookies     config.CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService, cookies config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
	}
}

// LoginResponse is the body of a successful login
type LoginResponse struct {
	Token     string                `json:"token"`
	ExpiresAt time.Time             `json:"expiresAt"`
	User      identity.UserResponse `json:"usuario"`
}

// Login authenticates with email and password.
// Super-admins get the token_superadmin cookie; club users get token_admin
// and token_admin_<clubId>. Any credential failure is a 401 without cookies.
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginInput
	if !h.bindJSON(c, &req) {
		return
	}

	// login runs before any session exists; record where it came from
	ctx := appaudit.WithActor(c.Request.Context(), appaudit.Actor{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	result, err := h.authService.Login(ctx, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	if result.User.SuperAdmin {
		h.setCookie(c, auth.CookieSuperAdmin, result.Token, maxAge)
	} else {
		h.setCookie(c, auth.CookieAdmin, result.Token, maxAge)
		if result.User.ClubID != nil {
			h.setCookie(c, auth.ClubCookieName(result.User.ClubID.String()), result.Token, maxAge)
		}
	}

	h.Success(c, LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.User,
	})
}

// Logout revokes the presented token and clears every session cookie.
// It succeeds without a valid session.
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.authService.Logout(c.Request.Context(), middleware.GetJWTClaims(c))

	for _, name := range []string{auth.CookieAdmin, auth.CookieSuperAdmin, auth.CookieLegacy} {
		h.setCookie(c, name, "", -1)
	}
	for _, ck := range c.Request.Cookies() {
		if strings.HasPrefix(ck.Name, auth.CookieAdminClubPrefix) {
			h.setCookie(c, ck.Name, "", -1)
		}
	}

	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "Sesión cerrada"})
}

// Me returns the user behind the current session
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.CurrentUser(c.Request.Context(), middleware.GetJWTClaims(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	path := h.cookies.Path
	if path == "" {
		path = "/"
	}
	c.SetSameSite(parseSameSite(h.cookies.SameSite))
	c.SetCookie(name, value, maxAge, path, h.cookies.Domain, h.cookies.Secure, true)
}

func parseSameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
