package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/iowasensors/internal/server/http/dto"
)

// SessionChecker reports whether the device holds a signed-in session.
type SessionChecker interface {
	SignedIn(ctx context.Context) (bool, error)
}

// SessionRequired rejects requests while nobody is signed in on the device.
func SessionRequired(checker SessionChecker, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := checker.SignedIn(c.Request.Context())
		if err != nil {
			logger.Error("session lookup failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "session unavailable"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "not authenticated"})
			return
		}
		c.Next()
	}
}
