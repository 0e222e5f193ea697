package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jrnavarro/coursetrack-client/internal/page"
	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
	"github.com/jrnavarro/coursetrack-client/pkg/response"
)

// SubjectsHandler renders the courses page from its mirror and forwards
// mutations to the dispatcher.
type SubjectsHandler struct {
	page *page.SubjectsPage
}

// NewSubjectsHandler constructs the handler.
func NewSubjectsHandler(p *page.SubjectsPage) *SubjectsHandler {
	return &SubjectsHandler{page: p}
}

// Register mounts the courses routes.
func (h *SubjectsHandler) Register(r gin.IRouter) {
	group := r.Group("/pages/courses")
	group.GET("", h.list)
	group.POST("", h.add)
	group.PATCH("/:id", h.edit)
	group.DELETE("/:id", h.remove)
}

func (h *SubjectsHandler) list(c *gin.Context) {
	keys, groups := h.page.Groups()
	response.JSON(c, http.StatusOK, gin.H{
		"categories": keys,
		"groups":     groups,
	}, map[string]interface{}{"loaded": h.page.Loaded()})
}

func (h *SubjectsHandler) add(c *gin.Context) {
	var draft page.SubjectDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.page.Add(c.Request.Context(), draft); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"subjects": h.page.Subjects()})
}

func (h *SubjectsHandler) edit(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var draft page.SubjectDraft
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
	response.OK(c, gin.H{"subjects": h.page.Subjects()})
}

func (h *SubjectsHandler) remove(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	// The DELETE verb is the caller's confirmation; the confirm dialog
	// state still guards the dispatcher underneath.
	h.page.BeginDelete(id)
	if err := h.page.Delete(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid id")
	}
	return id, nil
}
