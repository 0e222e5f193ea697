package page

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrnavarro/coursetrack-client/internal/models"
	"github.com/jrnavarro/coursetrack-client/internal/notify"
	"github.com/jrnavarro/coursetrack-client/internal/remote"
	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
)

type mockAuthAPI struct {
	user *models.User

	loginCalls int
	loginErr   error
	logoutErr  error
}

func (m *mockAuthAPI) Login(ctx context.Context, req remote.LoginRequest) error {
	m.loginCalls++
	return m.loginErr
}

func (m *mockAuthAPI) Register(ctx context.Context, req remote.RegisterRequest) error {
	return m.loginErr
}

func (m *mockAuthAPI) Logout(ctx context.Context) error { return m.logoutErr }

func (m *mockAuthAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	if m.user == nil {
		return nil, appErrors.ErrUnauthorized
	}
	u := *m.user
	return &u, nil
}

func TestSessionLoginRecordsUser(t *testing.T) {
	api := &mockAuthAPI{user: &models.User{ID: 4, Username: "jenny"}}
	s := NewSession(api, notify.New(time.Minute), nil)

	require.NoError(t, s.Login(context.Background(), "jenny", "pw"))

	user := s.User()
	require.NotNil(t, user)
	assert.Equal(t, "jenny", user.Username)
}

func TestSessionLoginRequiresCredentials(t *testing.T) {
	api := &mockAuthAPI{}
	notifier := notify.New(time.Minute)
	s := NewSession(api, notifier, nil)

	err := s.Login(context.Background(), "jenny", "")
	require.Error(t, err)
	assert.Zero(t, api.loginCalls, "empty credentials never reach the backend")
	assert.Equal(t, "Please enter a username and password.", notifier.Current().Text)
}

func TestSessionLoginFailure(t *testing.T) {
	api := &mockAuthAPI{loginErr: appErrors.ErrUnauthorized}
	notifier := notify.New(time.Minute)
	s := NewSession(api, notifier, nil)

	err := s.Login(context.Background(), "jenny", "wrong")
	require.Error(t, err)
	assert.Nil(t, s.User())
	assert.Equal(t, "Login failed. Check your credentials.", notifier.Current().Text)
}

func TestSessionRegisterRequiresFields(t *testing.T) {
	s := NewSession(&mockAuthAPI{}, notify.New(time.Minute), nil)

	err := s.Register(context.Background(), remote.RegisterRequest{Username: "jenny"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSessionLogoutClearsUser(t *testing.T) {
	api := &mockAuthAPI{user: &models.User{ID: 4, Username: "jenny"}}
	s := NewSession(api, notify.New(time.Minute), nil)
	require.NoError(t, s.Login(context.Background(), "jenny", "pw"))

	require.NoError(t, s.Logout(context.Background()))
	assert.Nil(t, s.User())
}

func TestSessionLogoutFailureKeepsUser(t *testing.T) {
	api := &mockAuthAPI{user: &models.User{ID: 4}, logoutErr: appErrors.ErrTransport}
	notifier := notify.New(time.Minute)
	s := NewSession(api, notifier, nil)
	require.NoError(t, s.Login(context.Background(), "jenny", "pw"))

	require.Error(t, s.Logout(context.Background()))
	assert.NotNil(t, s.User())
	assert.Equal(t, "Failed to log out. Try again.", notifier.Current().Text)
}
