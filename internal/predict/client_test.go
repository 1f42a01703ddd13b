package predict

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"mental-predictor/internal/feature"
)

func sampleVector(t *testing.T) feature.Vector {
	t.Helper()
	raw := feature.NewRawInput()
	for _, name := range feature.Names() {
		raw[name] = "Yes"
	}
	raw[feature.DaysIndoors] = "5"
	vec, err := feature.Build(raw)
	if err != nil {
		t.Fatalf("build vector: %v", err)
	}
	return vec
}

func newTestServer(t *testing.T, status int, body string, inspect func(*http.Request, []byte)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		if inspect != nil {
			inspect(r, data)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClientPredict_Success(t *testing.T) {
	var gotBody []byte
	var gotMethod, gotType string
	srv := newTestServer(t, http.StatusOK, `{"prediction":["Yes"]}`, func(r *http.Request, body []byte) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotBody = body
	})

	c := NewHTTPClient(srv.URL+"/predict", time.Second, zap.NewNop())
	res, err := c.Predict(context.Background(), sampleVector(t))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Display() != "Yes" {
		t.Fatalf("expected display Yes, got %q", res.Display())
	}
	if gotMethod != http.MethodPost || gotType != "application/json" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotType)
	}

	var payload struct {
		Features []any `json:"features"`
	}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if len(payload.Features) != feature.Count {
		t.Fatalf("expected %d features, got %d", feature.Count, len(payload.Features))
	}
	if n, ok := payload.Features[feature.Index(feature.DaysIndoors)].(float64); !ok || n != 5 {
		t.Fatalf("expected Days_Indoors as number 5, got %#v", payload.Features[feature.Index(feature.DaysIndoors)])
	}
}

func TestHTTPClientPredict_UpstreamError(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"error":"Model not loaded"}`, nil)
	c := NewHTTPClient(srv.URL, time.Second, nil)

	_, err := c.Predict(context.Background(), sampleVector(t))
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.Message != "Model not loaded" {
		t.Fatalf("expected upstream message, got %v", err)
	}
}

func TestHTTPClientPredict_FalsyErrorIgnored(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"error":"","prediction":[0]}`, nil)
	c := NewHTTPClient(srv.URL, time.Second, nil)

	res, err := c.Predict(context.Background(), sampleVector(t))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Display() != "0" {
		t.Fatalf("expected display 0, got %q", res.Display())
	}
}

func TestHTTPClientPredict_ErrorStatusIsTransport(t *testing.T) {
	srv := newTestServer(t, http.StatusBadRequest, `{"error":"Unknown category"}`, nil)
	c := NewHTTPClient(srv.URL, time.Second, nil)

	_, err := c.Predict(context.Background(), sampleVector(t))
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if errors.Is(err, ErrUpstream) {
		t.Fatalf("non-2xx must not surface as upstream error")
	}
}

func TestHTTPClientPredict_InvalidBody(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `not json`, nil)
	c := NewHTTPClient(srv.URL, time.Second, nil)

	if _, err := c.Predict(context.Background(), sampleVector(t)); !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestHTTPClientPredict_Unreachable(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{}`, nil)
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second, nil)
	if _, err := c.Predict(context.Background(), sampleVector(t)); !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestHTTPClientPredict_ContextCanceled(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"prediction":[1]}`, nil)
	c := NewHTTPClient(srv.URL, time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Predict(ctx, sampleVector(t)); !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport on canceled context, got %v", err)
	}
}

func TestResultDisplay(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{``, ""},
		{`null`, ""},
		{`[1]`, "1"},
		{`[1.0]`, "1"},
		{`[0.25]`, "0.25"},
		{`["Yes"]`, "Yes"},
		{`["Yes","No"]`, "YesNo"},
		{`"High"`, "High"},
		{`true`, ""},
		{`{"label":1}`, `{"label":1}`},
	}
	for _, tt := range tests {
		got := Result{Prediction: json.RawMessage(tt.raw)}.Display()
		if got != tt.want {
			t.Fatalf("Display(%s) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
