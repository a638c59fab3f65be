package middleware

import (
	"net/http"
	"slices"

	"github.com/clubfinanzas/backend/internal/domain/identity"
	"github.com/clubfinanzas/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
}

// RequireRole lets through club users holding one of roles. Super-admins
// always pass: they manage every club.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return RequireRoleWithConfig(PermissionConfig{}, roles...)
}

// RequireRoleWithConfig is RequireRole with custom config
func RequireRoleWithConfig(cfg PermissionConfig, roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "No autenticado")
			return
		}

		if claims.SuperAdmin || slices.Contains(roles, identity.Role(claims.Role)) {
			c.Next()
			return
		}

		if cfg.Logger != nil {
			cfg.Logger.Warn("Role check failed",
				zap.String("user_id", claims.UserID),
				zap.String("role", claims.Role),
				zap.String("path", c.Request.URL.Path),
			)
		}
		abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "No tiene permisos para esta acción")
	}
}

// RequireSuperAdmin restricts a route to platform super-admins
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "No autenticado")
			return
		}
		if !claims.SuperAdmin {
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "Solo super-administradores")
			return
		}
		c.Next()
	}
}
