package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/diabetect-backend/internal/services"
)

type HealthHandler struct {
	predictionService services.PredictionService
}

func NewHealthHandler(predictionService services.PredictionService) *HealthHandler {
	return &HealthHandler{predictionService: predictionService}
}

type HealthResponse struct {
	OK        bool   `json:"ok"`
	BestModel string `json:"best_model,omitempty"`
}

// Health reports whether a model artifact is actually loaded, not just
// process liveness.
func (h *HealthHandler) Health(c *gin.Context) {
	if !h.predictionService.Loaded() {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{OK: false})
		return
	}
	RespondOK(c, HealthResponse{
		OK:        true,
		BestModel: h.predictionService.BestModelName(),
	})
}
