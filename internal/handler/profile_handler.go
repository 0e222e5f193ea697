package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jrnavarro/coursetrack-client/internal/page"
	"github.com/jrnavarro/coursetrack-client/internal/remote"
	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
	"github.com/jrnavarro/coursetrack-client/pkg/response"
)

// ProfileHandler renders the profile page and forwards the multipart
// update, including the picture upload, to the backend.
type ProfileHandler struct {
	page *page.ProfilePage
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(p *page.ProfilePage) *ProfileHandler {
	return &ProfileHandler{page: p}
}

// Register mounts the profile routes.
func (h *ProfileHandler) Register(r gin.IRouter) {
	group := r.Group("/pages/profile")
	group.GET("", h.show)
	group.POST("", h.update)
}

func (h *ProfileHandler) show(c *gin.Context) {
	response.OK(c, gin.H{
		"user":    h.page.User(),
		"profile": h.page.Profile(),
	})
}

func (h *ProfileHandler) update(c *gin.Context) {
	payload := remote.ProfilePayload{
		Address: formField(c, "address"),
		School:  formField(c, "school"),
		Course:  formField(c, "course"),
		Bio:     formField(c, "bio"),
	}

	if fileHeader, err := c.FormFile("profile_pic"); err == nil && fileHeader != nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			response.Error(c, appErrors.Wrap(openErr, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unreadable profile picture"))
			return
		}
		defer file.Close() //nolint:errcheck
		payload.Picture = &remote.PictureUpload{Filename: fileHeader.Filename, Reader: file}
	}

	if err := h.page.Update(c.Request.Context(), payload); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"profile": h.page.Profile()})
}

func formField(c *gin.Context, name string) *string {
	if value, ok := c.GetPostForm(name); ok {
		return &value
	}
	return nil
}
