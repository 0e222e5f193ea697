package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrnavarro/coursetrack-client/internal/notify"
)

func TestNotificationHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	notifier := notify.New(time.Minute)
	r := gin.New()
	NewNotificationHandler(notifier).Register(r)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/notification", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			Notification *notify.Message `json:"notification"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body.Data.Notification, "empty slot reads as null")

	notifier.Success("Subject added successfully!")
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/notification", nil)
	r.ServeHTTP(w, req)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Data.Notification)
	assert.Equal(t, "Subject added successfully!", body.Data.Notification.Text)
	assert.Equal(t, notify.KindSuccess, body.Data.Notification.Kind)
}
