package page

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jrnavarro/coursetrack-client/internal/models"
	"github.com/jrnavarro/coursetrack-client/internal/notify"
	"github.com/jrnavarro/coursetrack-client/internal/remote"
	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
)

type authAPI interface {
	Login(ctx context.Context, req remote.LoginRequest) error
	Register(ctx context.Context, req remote.RegisterRequest) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

// Session handles the auth lifecycle for the dashboard. The backend owns
// the session cookie; this just tracks who is signed in locally.
type Session struct {
	api      authAPI
	notifier *notify.Notifier
	logger   *zap.Logger

	mu   sync.RWMutex
	user *models.User
}

// NewSession constructs the session.
func NewSession(api authAPI, notifier *notify.Notifier, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.New(0)
	}
	return &Session{api: api, notifier: notifier, logger: logger}
}

// Login signs in and records the current user.
func (s *Session) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		s.notifier.Error("Please enter a username and password.")
		return appErrors.Clone(appErrors.ErrValidation, "username and password are required")
	}
	if err := s.api.Login(ctx, remote.LoginRequest{Username: username, Password: password}); err != nil {
		s.logger.Sugar().Warnw("login failed", "username", username, "error", err)
		s.notifier.Error("Login failed. Check your credentials.")
		return err
	}
	return s.refreshUser(ctx)
}

// Register creates an account and records the current user.
func (s *Session) Register(ctx context.Context, req remote.RegisterRequest) error {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		s.notifier.Error("Please fill in all required fields.")
		return appErrors.Clone(appErrors.ErrValidation, "username, email and password are required")
	}
	if err := s.api.Register(ctx, req); err != nil {
		s.logger.Sugar().Warnw("registration failed", "username", req.Username, "error", err)
		s.notifier.Error("Registration failed. Try again.")
		return err
	}
	return s.refreshUser(ctx)
}

// Logout tears down the backend session. Failures surface through the
// notifier like every other mutation.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		s.logger.Sugar().Warnw("logout failed", "error", err)
		s.notifier.Error("Failed to log out. Try again.")
		return err
	}
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return nil
}

// User returns the signed-in account, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) refreshUser(ctx context.Context) error {
	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.logger.Sugar().Warnw("current user fetch failed", "error", err)
		return err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}
