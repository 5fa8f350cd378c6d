package httpd

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ph1losof/korni"
	"github.com/ph1losof/korni/cache"
)

type parseRequest struct {
	Content string `json:"content" binding:"required"`
}

type parseResponse struct {
	Entries []entryDTO `json:"entries"`
}

func (s *Service) handleParse(ctx *gin.Context) {
	var req parseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	key := "parse:" + cache.DigestKey([]byte(req.Content))

	var cached parseResponse
	if hit, err := s.cache.Get(ctx.Request.Context(), key, &cached); err == nil && hit {
		ctx.JSON(http.StatusOK, cached)
		return
	}

	entries := korni.ParseWithOptions(req.Content, korni.FullOptions)
	resp := parseResponse{Entries: toEntryDTOs(req.Content, entries)}

	_ = s.cache.Set(ctx.Request.Context(), key, resp, s.resultTTL)
	ctx.JSON(http.StatusOK, resp)
}
