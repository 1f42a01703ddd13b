package predict

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"mental-predictor/internal/feature"
)

// FailureMessage es el texto generico que ve el usuario ante cualquier
// falla de transporte.
const FailureMessage = "Prediction failed."

var (
	// ErrTransport agrupa errores de red, status no exitosos y bodies ilegibles.
	ErrTransport = errors.New("prediction transport failed")
	// ErrUpstream indica que el endpoint respondio con un campo error.
	ErrUpstream = errors.New("prediction endpoint returned an error")
)

// UpstreamError lleva el mensaje que devolvio el endpoint.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// Predictor define la interfaz para pedir una prediccion a partir de un vector.
type Predictor interface {
	Predict(ctx context.Context, vec feature.Vector) (Result, error)
}

// HTTPClient implementa Predictor contra POST /predict.
type HTTPClient struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPClient construye un cliente apuntando a la URL completa del endpoint.
func NewHTTPClient(endpoint string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if endpoint == "" {
		endpoint = "http://127.0.0.1:5000/predict"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (c *HTTPClient) Predict(ctx context.Context, vec feature.Vector) (Result, error) {
	bodyBytes, err := json.Marshal(vec.Payload())
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: do request: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("predict endpoint error status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return Result{}, fmt.Errorf("%w: status=%d", ErrTransport, resp.StatusCode)
	}

	var pr predictResponse
	if err := json.Unmarshal(respBody, &pr); err != nil {
		return Result{}, fmt.Errorf("%w: unmarshal response: %w", ErrTransport, err)
	}

	if msg, ok := truthyMessage(pr.Error); ok {
		return Result{}, &UpstreamError{Message: msg}
	}

	return Result{Prediction: pr.Prediction}, nil
}

type predictResponse struct {
	Prediction json.RawMessage `json:"prediction,omitempty"`
	Error      json.RawMessage `json:"error,omitempty"`
}

// truthyMessage devuelve el mensaje del campo error solo si es "truthy":
// null, false, 0 y "" se ignoran como lo hacia el formulario.
func truthyMessage(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch string(raw) {
	case "null", "false", "0", `""`:
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, true
		}
	}
	return string(raw), true
}
