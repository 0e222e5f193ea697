package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jrnavarro/coursetrack-client/pkg/config"
)

func TestNewHonorsLevelAndFormat(t *testing.T) {
	l, err := New(&config.Config{
		Env: config.EnvDevelopment,
		Log: config.LogConfig{Level: "warn", Format: "console"},
	})
	require.NoError(t, err)

	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestNewIgnoresBadLevel(t *testing.T) {
	l, err := New(&config.Config{
		Env: config.EnvProduction,
		Log: config.LogConfig{Level: "loud"},
	})
	require.NoError(t, err)

	// production preset default
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestGinMiddlewareEscalatesServerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	r := gin.New()
	r.Use(GinMiddleware(l))
	r.GET("/pages/courses", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/pages/notes", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pages/courses?sort=rank", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pages/notes", nil))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "gateway request", entries[0].Message)
	assert.Equal(t, "sort=rank", entries[0].ContextMap()["query"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusBadGateway, entries[1].ContextMap()["status"])
}
