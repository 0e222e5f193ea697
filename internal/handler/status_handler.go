package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrnavarro/coursetrack-client/internal/page"
	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
	"github.com/jrnavarro/coursetrack-client/pkg/response"
)

// StatusHandler renders the todo-list page, including the nested task
// routes, and forwards mutations.
type StatusHandler struct {
	page *page.StatusPage
}

// NewStatusHandler constructs the handler.
func NewStatusHandler(p *page.StatusPage) *StatusHandler {
	return &StatusHandler{page: p}
}

// Register mounts the status routes.
func (h *StatusHandler) Register(r gin.IRouter) {
	group := r.Group("/pages/status")
	group.GET("", h.list)
	group.POST("", h.add)
	group.PUT("/:id", h.edit)
	group.DELETE("/:id", h.remove)
	group.POST("/:id/tasks", h.addTask)
	group.PUT("/tasks/:taskId/toggle", h.toggleTask)
	group.DELETE("/tasks/:taskId", h.removeTask)
}

func (h *StatusHandler) list(c *gin.Context) {
	response.OK(c, gin.H{"lists": h.page.Lists()})
}

func (h *StatusHandler) add(c *gin.Context) {
	var draft page.TodoListDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.page.Add(c.Request.Context(), draft); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"lists": h.page.Lists()})
}

func (h *StatusHandler) edit(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var draft page.TodoListDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.page.OpenEdit(id); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.page.Edit(c.Request.Context(), id, draft); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"lists": h.page.Lists()})
}

func (h *StatusHandler) remove(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	h.page.BeginDelete(id)
	if err := h.page.Delete(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *StatusHandler) addTask(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var body struct {
		Label string `json:"label"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.page.AddTask(c.Request.Context(), id, body.Label); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"lists": h.page.Lists()})
}

func (h *StatusHandler) toggleTask(c *gin.Context) {
	taskID, err := pathID(c, "taskId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.page.ToggleTask(c.Request.Context(), taskID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"lists": h.page.Lists()})
}

func (h *StatusHandler) removeTask(c *gin.Context) {
	taskID, err := pathID(c, "taskId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.page.DeleteTask(c.Request.Context(), taskID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"lists": h.page.Lists()})
}
