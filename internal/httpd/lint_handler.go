package httpd

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ph1losof/korni"
	"github.com/ph1losof/korni/cache"
	"github.com/ph1losof/korni/lint"
)

type lintRequest struct {
	Content string `json:"content" binding:"required"`
}

type lintResponse struct {
	Diagnostics []diagnosticDTO `json:"diagnostics"`
}

func (s *Service) handleLint(ctx *gin.Context) {
	var req lintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	key := "lint:" + cache.DigestKey([]byte(req.Content))

	var cached lintResponse
	if hit, err := s.cache.Get(ctx.Request.Context(), key, &cached); err == nil && hit {
		ctx.JSON(http.StatusOK, cached)
		return
	}

	entries := korni.ParseWithOptions(req.Content, korni.FullOptions)
	resp := lintResponse{Diagnostics: toDiagnosticDTOs(lint.Run(entries))}

	_ = s.cache.Set(ctx.Request.Context(), key, resp, s.resultTTL)
	ctx.JSON(http.StatusOK, resp)
}
