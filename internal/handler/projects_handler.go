package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrnavarro/coursetrack-client/internal/page"
	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
	"github.com/jrnavarro/coursetrack-client/pkg/response"
)

// ProjectsHandler renders the projects page and forwards mutations.
type ProjectsHandler struct {
	page *page.ProjectsPage
}

// NewProjectsHandler constructs the handler.
func NewProjectsHandler(p *page.ProjectsPage) *ProjectsHandler {
	return &ProjectsHandler{page: p}
}

// Register mounts the projects routes.
func (h *ProjectsHandler) Register(r gin.IRouter) {
	group := r.Group("/pages/projects")
	group.GET("", h.list)
	group.POST("", h.add)
	group.PATCH("/:id", h.edit)
	group.DELETE("/:id", h.remove)
}

func (h *ProjectsHandler) list(c *gin.Context) {
	response.OK(c, gin.H{"projects": h.page.Projects()})
}

func (h *ProjectsHandler) add(c *gin.Context) {
	var draft page.ProjectDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.page.Add(c.Request.Context(), draft); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"projects": h.page.Projects()})
}

func (h *ProjectsHandler) edit(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var draft page.ProjectDraft
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
	response.OK(c, gin.H{"projects": h.page.Projects()})
}

func (h *ProjectsHandler) remove(c *gin.Context) {
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
