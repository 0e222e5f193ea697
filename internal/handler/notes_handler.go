package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrnavarro/coursetrack-client/internal/page"
	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
	"github.com/jrnavarro/coursetrack-client/pkg/response"
)

// NotesHandler renders the notes page from its grouped mirror and forwards
// mutations to the dispatcher.
type NotesHandler struct {
	page *page.NotesPage
}

// NewNotesHandler constructs the handler.
func NewNotesHandler(p *page.NotesPage) *NotesHandler {
	return &NotesHandler{page: p}
}

// Register mounts the notes routes.
func (h *NotesHandler) Register(r gin.IRouter) {
	group := r.Group("/pages/notes")
	group.GET("", h.list)
	group.GET("/subjects", h.subjects)
	group.POST("", h.add)
	group.PATCH("/:id", h.edit)
	group.DELETE("/:id", h.remove)
}

func (h *NotesHandler) list(c *gin.Context) {
	term := c.Query("q")
	response.OK(c, gin.H{"groups": h.page.Search(term)})
}

func (h *NotesHandler) subjects(c *gin.Context) {
	response.OK(c, gin.H{"subjects": h.page.Subjects()})
}

func (h *NotesHandler) add(c *gin.Context) {
	var draft page.NoteDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.page.OpenAdd(); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.page.Add(c.Request.Context(), draft); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"groups": h.page.Groups()})
}

func (h *NotesHandler) edit(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var draft page.NoteDraft
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
	response.OK(c, gin.H{"groups": h.page.Groups()})
}

func (h *NotesHandler) remove(c *gin.Context) {
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
