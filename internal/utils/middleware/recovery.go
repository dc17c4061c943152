package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/edumate/server/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// Recovery returns a middleware that turns panics into a JSON 500 so the
// caller always receives a well-formed body. The panic is logged with the
// request-scoped logger when Logging has set one.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.New(nil)
	}

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.FromContext(c.Request.Context(), log).Error("Panic recovered",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
