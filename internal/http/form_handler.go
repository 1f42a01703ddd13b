package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mental-predictor/internal/domain"
	"mental-predictor/internal/feature"
	"mental-predictor/internal/predict"
	"mental-predictor/internal/service"
)

// FormHandler expone el flujo del formulario sobre HTTP.
type FormHandler struct {
	logger       *zap.Logger
	predictions  *service.PredictionService
	historyLimit int
}

// NewFormHandler crea una instancia de FormHandler con dependencias necesarias.
func NewFormHandler(logger *zap.Logger, predictions *service.PredictionService, historyLimit int) *FormHandler {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &FormHandler{
		logger:       logger,
		predictions:  predictions,
		historyLimit: historyLimit,
	}
}

// ListFeatures maneja GET /features.
func (h *FormHandler) ListFeatures(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"features": feature.Names()})
}

// Submit maneja POST /submit.
func (h *FormHandler) Submit(c *gin.Context) {
	var req struct {
		Features map[string]string `json:"features" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	raw := feature.RawInput(req.Features)
	if unknown := raw.Unknown(); len(unknown) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown features", "unknown": unknown})
		return
	}

	sub, err := h.predictions.Submit(c.Request.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, feature.ErrIncompleteInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, predict.ErrUpstream):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": predict.UserMessage(err), "submission": sub})
		default:
			h.logger.Error("prediction failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": predict.FailureMessage, "submission": sub})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prediction": sub.Prediction,
		"result":     sub.Result,
		"submission": sub,
	})
}

// ListSubmissions maneja GET /submissions.
func (h *FormHandler) ListSubmissions(c *gin.Context) {
	limit := h.historyLimit
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		if n < limit {
			limit = n
		}
	}

	subs, err := h.predictions.History(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("list submissions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list submissions"})
		return
	}
	if subs == nil {
		subs = []domain.Submission{}
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs})
}
