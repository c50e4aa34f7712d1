package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"pfas-demo/internal/pkg/logger"
	"pfas-demo/internal/transport/http/response"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)
				response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
