package page

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jrnavarro/coursetrack-client/internal/models"
	"github.com/jrnavarro/coursetrack-client/internal/notify"
	"github.com/jrnavarro/coursetrack-client/internal/remote"
	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
)

type profileAPI interface {
	CurrentUser(ctx context.Context) (*models.User, error)
	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, payload remote.ProfilePayload) (*models.UserProfile, error)
}

// ProfilePage mirrors the singleton user+profile pair. Unlike the list
// pages it holds one record, fetched once on start and replaced from the
// update response.
type ProfilePage struct {
	api      profileAPI
	notifier *notify.Notifier
	observer MutationObserver
	logger   *zap.Logger

	mu       sync.RWMutex
	user     *models.User
	profile  *models.UserProfile
	inFlight bool
}

// ProfilePageConfig wires the page's collaborators.
type ProfilePageConfig struct {
	API      profileAPI
	Notifier *notify.Notifier
	Observer MutationObserver
	Logger   *zap.Logger
}

// NewProfilePage constructs the page.
func NewProfilePage(cfg ProfilePageConfig) *ProfilePage {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.New(0)
	}
	return &ProfilePage{
		api:      cfg.API,
		notifier: cfg.Notifier,
		observer: cfg.Observer,
		logger:   cfg.Logger,
	}
}

// Start fetches the current user and their profile once.
func (p *ProfilePage) Start(ctx context.Context) error {
	user, err := p.api.CurrentUser(ctx)
	if err != nil {
		return err
	}
	profile, err := p.api.GetProfile(ctx, user.ID)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.user = user
	p.profile = profile
	p.mu.Unlock()
	return nil
}

// Stop exists for symmetry with the polled pages.
func (p *ProfilePage) Stop() {}

// User returns the authenticated account, or nil before Start succeeds.
func (p *ProfilePage) User() *models.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.user == nil {
		return nil
	}
	u := *p.user
	return &u
}

// Profile returns the mirrored profile, or nil before Start succeeds.
func (p *ProfilePage) Profile() *models.UserProfile {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.profile == nil {
		return nil
	}
	prof := *p.profile
	return &prof
}

// Update submits the multipart profile form and replaces the mirrored
// profile from the response.
func (p *ProfilePage) Update(ctx context.Context, payload remote.ProfilePayload) error {
	start := time.Now()
	err := p.update(ctx, payload)
	observe(p.observer, "profile", "update", err, start)
	return err
}

func (p *ProfilePage) update(ctx context.Context, payload remote.ProfilePayload) error {
	p.mu.Lock()
	if p.user == nil {
		p.mu.Unlock()
		return appErrors.Clone(appErrors.ErrUnauthorized, "profile not loaded")
	}
	if p.inFlight {
		p.mu.Unlock()
		return appErrors.ErrMutationInFlight
	}
	p.inFlight = true
	userID := p.user.ID
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}()

	updated, err := p.api.UpdateProfile(ctx, userID, payload)
	if err != nil {
		p.logger.Sugar().Warnw("profile update failed", "user_id", userID, "error", err)
		p.notifier.Error("Failed to update profile. Try again.")
		return err
	}

	p.mu.Lock()
	p.profile = updated
	p.mu.Unlock()
	p.notifier.Success("Profile updated successfully!")
	return nil
}
