package domain

import (
	"time"

	"github.com/goccy/go-json"

	"mental-predictor/internal/feature"
)

// Submission registra un intento de prediccion y lo que vio el usuario.
type Submission struct {
	ID         string          `json:"id"`
	Features   feature.Vector  `json:"features"`
	Prediction json.RawMessage `json:"prediction,omitempty"`
	Result     string          `json:"result"`
	Error      string          `json:"error,omitempty"`
	CacheHit   bool            `json:"cache_hit"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Succeeded indica si el intento termino con una prediccion.
func (s Submission) Succeeded() bool {
	return s.Error == ""
}
