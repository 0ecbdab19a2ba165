package middleware

import (
	"errors"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"felmel/internal/logger"
)

// Recovery turns a handler panic into a 500 JSON response. Panics caused by a client that
// went away are logged and the request is dropped without a response.
func Recovery(logger *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		method, path := c.Request.Method, c.Request.URL.Path

		if clientGone(recovered) {
			logger.Warn("Client went away during %s %s: %v", method, path, recovered)
			c.Abort()
			return
		}

		if gin.IsDebugging() {
			logger.Error("Panic on %s %s: %v\n%s", method, path, recovered, debug.Stack())
		} else {
			logger.Error("Panic on %s %s: %v", method, path, recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

func clientGone(recovered interface{}) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if !errors.As(opErr.Err, &sysErr) {
		return false
	}
	msg := strings.ToLower(sysErr.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
