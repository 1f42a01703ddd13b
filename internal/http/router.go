package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router del gateway que usa el formulario.
func NewRouter(
	logger *zap.Logger,
	corsOrigin string,
	formH *FormHandler,
	healthH *HealthHandler,
) *gin.Engine {
	r := newEngine(logger, corsOrigin)

	r.GET("/features", formH.ListFeatures)
	r.POST("/submit", formH.Submit)
	r.GET("/submissions", formH.ListSubmissions)
	r.GET("/healthz", healthH.Check)

	return r
}

// NewModelRouter configura el router del servidor de modelo.
func NewModelRouter(logger *zap.Logger, corsOrigin string, modelH *ModelHandler) *gin.Engine {
	r := newEngine(logger, corsOrigin)

	r.POST("/predict", modelH.Predict)
	r.GET("/model", modelH.Info)

	return r
}

func newEngine(logger *zap.Logger, corsOrigin string) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery, CORS y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(corsOrigin), jsonContentTypeMiddleware())
	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// corsMiddleware habilita al formulario servido desde otro origen.
// Los preflight OPTIONS se responden sin llegar a los handlers.
func corsMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		if origin != "*" {
			h.Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
