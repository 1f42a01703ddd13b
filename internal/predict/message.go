package predict

import (
	"errors"

	"mental-predictor/internal/feature"
)

// UserMessage traduce un error del flujo de prediccion al texto que se le
// muestra al usuario.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, feature.ErrIncompleteInput) {
		return feature.ErrIncompleteInput.Error()
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Message
	}
	return FailureMessage
}
