package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jrnavarro/coursetrack-client/internal/notify"
	"github.com/jrnavarro/coursetrack-client/pkg/response"
)

// NotificationHandler exposes the transient message slot so views can poll
// the current success/error banner.
type NotificationHandler struct {
	notifier *notify.Notifier
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(n *notify.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: n}
}

// Register mounts the notification route.
func (h *NotificationHandler) Register(r gin.IRouter) {
	r.GET("/notification", h.current)
}

func (h *NotificationHandler) current(c *gin.Context) {
	response.OK(c, gin.H{"notification": h.notifier.Current()})
}
