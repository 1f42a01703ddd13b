package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthCheck verifica una dependencia externa.
type HealthCheck func(ctx context.Context) error

// HealthHandler reporta el estado de redis, postgres y lo que se registre.
type HealthHandler struct {
	logger *zap.Logger
	checks map[string]HealthCheck
}

func NewHealthHandler(logger *zap.Logger, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{logger: logger, checks: checks}
}

// Check maneja GET /healthz.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	results := make(map[string]bool, len(names))
	for _, name := range names {
		err := h.checks[name](ctx)
		results[name] = err == nil
		if err != nil {
			h.logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
			status = http.StatusServiceUnavailable
		}
	}

	label := "ok"
	if status != http.StatusOK {
		label = "degraded"
	}
	c.JSON(status, gin.H{
		"status":    label,
		"checks":    results,
		"timestamp": time.Now().UTC(),
	})
}
