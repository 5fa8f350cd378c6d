// Package httpd is the HTTP daemon named in the system overview: a small
// gin service exposing the core parser and lint layer over JSON, with
// results memoized by content digest.
package httpd

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ph1losof/korni/cache"
)

// Service wraps an *http.Server whose handler is a gin router exposing
// /v1/parse and /v1/lint.
type Service struct {
	cache     cache.Cache
	server    *http.Server
	router    *gin.Engine
	validate  *validator.Validate
	resultTTL time.Duration
}

// NewService builds a Service listening on addr, caching responses in c.
func NewService(addr string, c cache.Cache) *Service {
	service := &Service{
		cache:     c,
		resultTTL: 10 * time.Minute,
	}

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		service.validate = v
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}

	service.setupRouter(server)
	service.server = server
	return service
}

func (s *Service) setupRouter(server *http.Server) {
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), loggingMiddleware(), corsMiddleware())

	router.GET("/ping", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})

	v1 := router.Group("/v1")
	v1.POST("/parse", s.handleParse)
	v1.POST("/lint", s.handleLint)

	s.router = router
	server.Handler = router
}

// Start runs the HTTP server until it is shut down or fails.
func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
