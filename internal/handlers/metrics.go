package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/diabetect-backend/internal/services"
)

type MetricsHandler struct {
	predictionService services.PredictionService
}

func NewMetricsHandler(predictionService services.PredictionService) *MetricsHandler {
	return &MetricsHandler{predictionService: predictionService}
}

// Metrics serves the persisted registry document: per-model confusion
// matrix and scores, the feature order, and the selected key.
func (h *MetricsHandler) Metrics(c *gin.Context) {
	body, err := h.predictionService.MetricsDocument(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusServiceUnavailable, "metrics_unavailable", err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}
