package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"felmel/internal/logger"
)

func Logger(logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		switch {
		case status >= 500:
			logger.Error("%s %s %d %s %s", c.Request.Method, path, status, time.Since(start), c.ClientIP())
		case status >= 400:
			logger.Warn("%s %s %d %s %s", c.Request.Method, path, status, time.Since(start), c.ClientIP())
		default:
			logger.Info("%s %s %d %s %s", c.Request.Method, path, status, time.Since(start), c.ClientIP())
		}
	}
}
