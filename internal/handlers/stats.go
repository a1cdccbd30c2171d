package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/diabetect-backend/internal/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.Stats(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrStatsUnavailable) {
			RespondError(c, http.StatusServiceUnavailable, "stats_unavailable", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "stats_failed", err)
		return
	}
	RespondOK(c, stats)
}
