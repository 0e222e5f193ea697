package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jrnavarro/coursetrack-client/internal/page"
	"github.com/jrnavarro/coursetrack-client/internal/remote"
	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
	"github.com/jrnavarro/coursetrack-client/pkg/response"
)

// AuthHandler passes the auth lifecycle through to the backend session.
// onLogin and onLogout let the caller tie page poll loops to the session:
// the loops only make sense while the backend trusts our cookie.
type AuthHandler struct {
	session  *page.Session
	onLogin  func()
	onLogout func()
}

// NewAuthHandler constructs the handler. Hooks may be nil.
func NewAuthHandler(s *page.Session, onLogin, onLogout func()) *AuthHandler {
	return &AuthHandler{session: s, onLogin: onLogin, onLogout: onLogout}
}

// Register mounts the auth routes.
func (h *AuthHandler) Register(r gin.IRouter) {
	group := r.Group("/auth")
	group.POST("/login", h.login)
	group.POST("/register", h.register)
	group.POST("/logout", h.logout)
	group.GET("/me", h.me)
}

func (h *AuthHandler) login(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.session.Login(c.Request.Context(), body.Username, body.Password); err != nil {
		response.Error(c, err)
		return
	}
	if h.onLogin != nil {
		h.onLogin()
	}
	response.OK(c, gin.H{"user": h.session.User()})
}

func (h *AuthHandler) register(c *gin.Context) {
	var body remote.RegisterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.session.Register(c.Request.Context(), body); err != nil {
		response.Error(c, err)
		return
	}
	if h.onLogin != nil {
		h.onLogin()
	}
	response.OK(c, gin.H{"user": h.session.User()})
}

func (h *AuthHandler) logout(c *gin.Context) {
	if err := h.session.Logout(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	if h.onLogout != nil {
		h.onLogout()
	}
	response.NoContent(c)
}

func (h *AuthHandler) me(c *gin.Context) {
	user := h.session.User()
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.OK(c, gin.H{"user": user})
}
