package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mental-predictor/internal/predict"
	"mental-predictor/internal/service"
)

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewModelRouter(zap.NewNop(), "http://localhost:8080", NewModelHandler(zap.NewNop(), nil, nil))

	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:8080" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestCORSHeadersOnResponses(t *testing.T) {
	r, _ := setupFormRouter(&predict.MockClient{})
	rec := performRequest(r, http.MethodGet, "/features", nil)
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected wildcard CORS header")
	}
	if rec.Header().Get("Content-Type") != "application/json; charset=utf-8" && rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewPredictionService(zap.NewNop(), &predict.MockClient{}, nil, 0, nil)
	formH := NewFormHandler(zap.NewNop(), svc, 10)

	healthy := NewHealthHandler(zap.NewNop(), map[string]HealthCheck{
		"redis": func(context.Context) error { return nil },
	})
	rec := performRequest(NewRouter(zap.NewNop(), "*", formH, healthy), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	degraded := NewHealthHandler(zap.NewNop(), map[string]HealthCheck{
		"redis":    func(context.Context) error { return nil },
		"postgres": func(context.Context) error { return errors.New("down") },
	})
	rec = performRequest(NewRouter(zap.NewNop(), "*", formH, degraded), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	checks, _ := body["checks"].(map[string]any)
	if body["status"] != "degraded" || checks["postgres"] != false || checks["redis"] != true {
		t.Fatalf("unexpected body %v", body)
	}
}
