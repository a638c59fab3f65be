package middleware

import (
	"net/http"

	appaudit "github.com/clubfinanzas/backend/internal/application/audit"
	"github.com/clubfinanzas/backend/internal/infrastructure/auth"
	"github.com/clubfinanzas/backend/internal/infrastructure/logger"
	"github.com/clubfinanzas/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey = "jwt_claims"
	JWTTokenKey  = "jwt_token"
)

// JWTMiddlewareConfig holds configuration for the auth middleware
type JWTMiddlewareConfig struct {
	// Extractor finds and validates the session token
	Extractor *auth.TokenExtractor
	// Logger for middleware logging (optional)
	Logger *zap.Logger
}

// JWTAuthMiddleware requires a valid, non-revoked session token
func JWTAuthMiddleware(extractor *auth.TokenExtractor) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{Extractor: extractor})
}

// JWTAuthMiddlewareWithConfig creates the auth middleware with custom config.
// The token is taken from the Authorization header or one of the session
// cookies; see auth.Candidates for the order.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, token, ok := cfg.Extractor.Extract(c.Request.Context(), c.Request)
		if !ok {
			if cfg.Logger != nil {
				cfg.Logger.Debug("No usable session token",
					zap.String("path", c.Request.URL.Path),
					zap.Int("candidates", len(auth.Candidates(c.Request))),
				)
			}
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "No autenticado")
			return
		}

		setSession(c, claims, token)

		if cfg.Logger != nil {
			cfg.Logger.Debug("JWT authentication successful",
				zap.String("user_id", claims.UserID),
				zap.String("club_id", claims.ClubID),
				zap.Bool("super_admin", claims.SuperAdmin),
			)
		}

		c.Next()
	}
}

// OptionalJWTAuthMiddleware attaches the session when one is present and
// lets anonymous requests through. Used by logout, which must succeed
// without a valid token.
func OptionalJWTAuthMiddleware(extractor *auth.TokenExtractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, token, ok := extractor.Extract(c.Request.Context(), c.Request); ok {
			setSession(c, claims, token)
		}
		c.Next()
	}
}

// setSession stores the claims in the gin context and the acting user in
// the request context, where the audit recorder and logger pick them up.
func setSession(c *gin.Context, claims *auth.Claims, token string) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTTokenKey, token)
	c.Set(logger.GinUserIDKey, claims.UserID)

	ctx := logger.WithUserID(c.Request.Context(), claims.UserID)

	actor := appaudit.Actor{
		UserName:  claims.Name,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if userID, err := claims.GetUserUUID(); err == nil {
		actor.UserID = &userID
	}
	ctx = appaudit.WithActor(ctx, actor)

	c.Request = c.Request.WithContext(ctx)
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	if claims := GetJWTClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}
