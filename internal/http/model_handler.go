package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"mental-predictor/internal/encoding"
	"mental-predictor/internal/feature"
	"mental-predictor/internal/model"
)

// ModelHandler sirve POST /predict delante de un model.Model.
type ModelHandler struct {
	logger  *zap.Logger
	model   model.Model
	encoder *encoding.RowEncoder
}

// NewModelHandler acepta m == nil: en ese caso todas las predicciones
// responden "Model not loaded".
func NewModelHandler(logger *zap.Logger, m model.Model, encoder *encoding.RowEncoder) *ModelHandler {
	if encoder == nil {
		encoder = encoding.NewDefaultRowEncoder()
	}
	return &ModelHandler{
		logger:  logger,
		model:   m,
		encoder: encoder,
	}
}

// Predict maneja POST /predict.
func (h *ModelHandler) Predict(c *gin.Context) {
	if h.model == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": model.ErrNotLoaded.Error()})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	vec, err := decodeFeatures(body)
	if err != nil {
		h.logger.Warn("invalid predict request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Debug("received features", zap.Stringers("features", []feature.Value(vec)))

	row, err := h.encoder.Encode(vec)
	if err != nil {
		h.logger.Warn("encode features failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	label, err := h.model.Predict(c.Request.Context(), row)
	if err != nil {
		h.logger.Error("model predict failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"prediction": []any{label}})
}

// Info maneja GET /model.
func (h *ModelHandler) Info(c *gin.Context) {
	if h.model == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": model.ErrNotLoaded.Error()})
		return
	}
	c.JSON(http.StatusOK, h.model.Info())
}

type predictRequest struct {
	Features *[]json.RawMessage `json:"features"`
}

func decodeFeatures(body []byte) (feature.Vector, error) {
	var req predictRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errInvalidBody
	}
	if req.Features == nil {
		return nil, errMissingFeatures
	}
	vec := make(feature.Vector, len(*req.Features))
	for i, raw := range *req.Features {
		if err := vec[i].UnmarshalJSON(raw); err != nil {
			return nil, &featureValueError{index: i, err: err}
		}
	}
	return vec, nil
}
