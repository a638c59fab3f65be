package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/clubfinanzas/backend/internal/infrastructure/cache"
	"github.com/clubfinanzas/backend/internal/infrastructure/logger"
	"github.com/clubfinanzas/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader lets clients retry money movements safely
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

// Idempotent rejects with 409 a request whose Idempotency-Key the same user
// already sent to the same path within ttl. Requests without the header pass
// through. A key is freed again when its request fails, so a corrected retry
// can reuse it. Store errors let the request through.
func Idempotent(store cache.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			abortWithError(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "El encabezado Idempotency-Key es demasiado largo")
			return
		}

		scoped := GetJWTUserID(c) + ":" + c.Request.Method + ":" + c.Request.URL.Path + ":" + key
		ctx := c.Request.Context()
		ok, err := store.Reserve(ctx, scoped, ttl)
		if err != nil {
			logger.GetGinLogger(c).Warn("Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			abortWithError(c, http.StatusConflict, dto.ErrCodeConflict, "Solicitud duplicada: esta operación ya fue procesada")
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := store.Release(ctx, scoped); err != nil {
				logger.GetGinLogger(c).Warn("Failed to release idempotency key", zap.Error(err))
			}
		}
	}
}
