package logger

import (
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CorrelationIDHeader carries the per-request correlation identifier.
const CorrelationIDHeader = "X-Correlation-ID"

const correlationIDKey = "nidoCorrelationID"

// Init builds the application logger. LOG_LEVEL selects the minimum
// level (debug, info, warn, error); anything else falls back to info.
func Init() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(os.Getenv("LOG_LEVEL")))
	return cfg.Build()
}

func parseLevel(raw string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Middleware logs each request and assigns a correlation ID, reusing
// one supplied by the client when present.
func Middleware(logg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(correlationIDKey, id)
		c.Header(CorrelationIDHeader, id)

		start := time.Now()
		c.Next()

		logg.Info("http request",
			zap.String("correlation_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// CorrelationID returns the request's correlation ID, if any.
func CorrelationID(c *gin.Context) string {
	return c.GetString(correlationIDKey)
}
