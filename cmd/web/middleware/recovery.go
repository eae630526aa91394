package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"kalshield/cmd/internal/logger"
	"kalshield/cmd/web/trace"
)

// Recovery turns a panic into a 500 and a structured log line.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		fields := trace.Fields(c.Request.Context())
		fields["method"] = c.Request.Method
		fields["path"] = c.Request.URL.Path
		fields["panic"] = fmt.Sprint(recovered)
		logger.ErrorWithFields("panic recovered", fields)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
