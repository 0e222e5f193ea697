package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jrnavarro/coursetrack-client/pkg/config"
	"github.com/jrnavarro/coursetrack-client/pkg/middleware/requestid"
)

// New builds the gateway logger. Production gets zap's json preset,
// anything else the development console preset; LOG_FORMAT and LOG_LEVEL
// override the preset's encoding and level when set.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Env == config.EnvProduction {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if cfg.Log.Format != "" {
		zapCfg.Encoding = encodingFor(cfg.Log.Format)
	}
	if lvl, ok := parseLevel(cfg.Log.Level); ok {
		zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapCfg.Build(zap.Fields(zap.String("service", "dashboard-gateway")))
}

func encodingFor(format string) string {
	if format == "console" {
		return "console"
	}
	return "json"
}

func parseLevel(s string) (zapcore.Level, bool) {
	if s == "" {
		return 0, false
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, false
	}
	return lvl, true
}

// GinMiddleware writes one line per request served by the gateway, at
// warn for 5xx responses so backend trouble stands out in the stream.
func GinMiddleware(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if id := requestid.Value(c); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}

		if status >= http.StatusInternalServerError {
			l.Warn("gateway request", fields...)
			return
		}
		l.Info("gateway request", fields...)
	}
}
