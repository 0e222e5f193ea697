package remote

import (
	"context"
	"net/http"

	"github.com/jrnavarro/coursetrack-client/internal/models"
)

// LoginRequest carries sign-in credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest carries the account creation payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Login establishes the session; the backend responds with a session
// cookie the jar retains for all subsequent calls.
func (c *Client) Login(ctx context.Context, req LoginRequest) error {
	var resp apiResponse
	return c.doJSON(ctx, http.MethodPost, "/api/login/", req, &resp)
}

// Register creates an account and establishes the session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	var resp apiResponse
	return c.doJSON(ctx, http.MethodPost, "/api/register/", req, &resp)
}

// Logout tears down the session.
func (c *Client) Logout(ctx context.Context) error {
	var resp apiResponse
	return c.doJSON(ctx, http.MethodPost, "/api/logout/", struct{}{}, &resp)
}

// CurrentUser returns the authenticated account. The endpoint returns the
// user fields directly, without the success envelope.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/current_user/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
