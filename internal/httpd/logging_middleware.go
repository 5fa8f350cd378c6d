package httpd

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// loggingMiddleware emits one structured log line per request, the way
// zerolog's own gin examples do: method, path, status, latency, and the
// correlating request ID.
func loggingMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		event := log.Info()
		if ctx.Writer.Status() >= 500 {
			event = log.Error()
		} else if ctx.Writer.Status() >= 400 {
			event = log.Warn()
		}

		event.
			Str("request_id", requestIDFrom(ctx)).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", ctx.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request handled")
	}
}

// ConfigureLogger sets the global zerolog level; korni serve's --verbose
// flag lowers it to debug.
func ConfigureLogger(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}
