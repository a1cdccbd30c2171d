package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/diabetect-backend/internal/services"
	"github.com/yungbote/diabetect-backend/internal/types"
)

type PredictHandler struct {
	predictionService services.PredictionService
}

func NewPredictHandler(predictionService services.PredictionService) *PredictHandler {
	return &PredictHandler{predictionService: predictionService}
}

// Predict accepts any subset of the eight feature fields. Unknown fields
// are ignored; a present but non-numeric field fails binding; an entirely
// empty request fails validation in the service.
func (h *PredictHandler) Predict(c *gin.Context) {
	var req types.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	res, err := h.predictionService.Predict(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoFeatures):
			RespondError(c, http.StatusBadRequest, "no_features", err)
		case errors.Is(err, services.ErrNotLoaded):
			RespondError(c, http.StatusServiceUnavailable, "model_not_loaded", err)
		default:
			RespondError(c, http.StatusInternalServerError, "prediction_failed", err)
		}
		return
	}
	RespondOK(c, res)
}
