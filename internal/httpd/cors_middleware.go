package httpd

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsMiddleware allows any origin to call the daemon's JSON endpoints;
// there is no session state or cookie here for a cross-origin request to
// leak, unlike the user-facing services this pattern is adapted from.
func corsMiddleware() gin.HandlerFunc {
	allowedHeaders := strings.Join([]string{"Content-Type", requestIDHeader}, ",")

	return func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", "*")
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", allowedHeaders)

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
