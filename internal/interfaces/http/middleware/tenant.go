package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/clubfinanzas/backend/internal/infrastructure/auth"
	"github.com/clubfinanzas/backend/internal/infrastructure/logger"
	"github.com/clubfinanzas/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClubIDKey is the gin key holding the resolved club as uuid.UUID
const ClubIDKey = "club_uuid"

// ClubResolver resolves the club an authenticated request acts on
type ClubResolver interface {
	ResolveClaims(ctx context.Context, claims *auth.Claims, requestedClubID string) (uuid.UUID, error)
}

// ClubScope resolves the acting club from the session and stores it for
// handlers. Must run after JWTAuthMiddleware. Club users are pinned to the
// club in their token; super-admins pick one with the X-Club-ID header.
func ClubScope(resolver ClubResolver, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "No autenticado")
			return
		}

		clubID, err := resolver.ResolveClaims(c.Request.Context(), claims, c.GetHeader(auth.HeaderClubID))
		if err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				code := dto.NormalizeErrorCode(domainErr.Code)
				abortWithError(c, dto.GetHTTPStatus(code), code, domainErr.Message)
				return
			}
			if log != nil {
				log.Error("Failed to resolve club", zap.Error(err), zap.String("user_id", claims.UserID))
			}
			abortWithError(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Ocurrió un error inesperado")
			return
		}

		c.Set(ClubIDKey, clubID)
		c.Set(logger.GinClubIDKey, clubID.String())
		c.Request = c.Request.WithContext(logger.WithClubID(c.Request.Context(), clubID.String()))
		c.Next()
	}
}

// GetClubID returns the club resolved by ClubScope
func GetClubID(c *gin.Context) (uuid.UUID, bool) {
	if v, ok := c.Get(ClubIDKey); ok {
		if id, ok := v.(uuid.UUID); ok && id != uuid.Nil {
			return id, true
		}
	}
	return uuid.Nil, false
}
