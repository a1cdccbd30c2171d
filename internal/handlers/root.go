package handlers

import "github.com/gin-gonic/gin"

// Root serves a small API index for anyone poking the base URL.
func Root(c *gin.Context) {
	RespondOK(c, gin.H{
		"message": "Diabetes Prediction API",
		"endpoints": gin.H{
			"health":  "/health - Check API health and best model",
			"metrics": "/metrics - Get model evaluation metrics",
			"predict": "/predict - Make diabetes prediction (POST)",
			"stats":   "/api/stats - Aggregate prediction statistics",
		},
	})
}
