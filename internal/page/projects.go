package page

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jrnavarro/coursetrack-client/internal/form"
	"github.com/jrnavarro/coursetrack-client/internal/mirror"
	"github.com/jrnavarro/coursetrack-client/internal/models"
	"github.com/jrnavarro/coursetrack-client/internal/notify"
	"github.com/jrnavarro/coursetrack-client/internal/remote"
	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
)

type projectAPI interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, payload remote.ProjectPayload) (*models.Project, error)
	UpdateProject(ctx context.Context, id int64, payload remote.ProjectPayload) (*models.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// ProjectDraft holds the add/edit form fields for a project.
type ProjectDraft struct {
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status" validate:"required,project_status"`
}

func defaultProjectDraft() ProjectDraft {
	return ProjectDraft{Status: models.ProjectNotStarted}
}

// ProjectsPage keeps the projects view in sync: a flat mirror sorted by
// creation time, fetched once on start and patched on every mutation.
type ProjectsPage struct {
	api        projectAPI
	collection *mirror.Collection[models.Project]
	form       *form.Controller[ProjectDraft]
	notifier   *notify.Notifier
	validate   *validator.Validate
	observer   MutationObserver
	logger     *zap.Logger
}

// ProjectsPageConfig wires the page's collaborators.
type ProjectsPageConfig struct {
	API      projectAPI
	Notifier *notify.Notifier
	Observer MutationObserver
	Logger   *zap.Logger
}

// NewProjectsPage constructs the page.
func NewProjectsPage(cfg ProjectsPageConfig) *ProjectsPage {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.New(0)
	}

	p := &ProjectsPage{
		api:      cfg.API,
		form:     form.NewController(defaultProjectDraft),
		notifier: cfg.Notifier,
		validate: newValidator(),
		observer: cfg.Observer,
		logger:   cfg.Logger,
	}
	p.collection = mirror.NewCollection(mirror.Options[models.Project]{
		Name:  "projects",
		Fetch: cfg.API.ListProjects,
		ID:    func(pr models.Project) int64 { return pr.ID },
		Less: func(a, b models.Project) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		},
		Logger:   cfg.Logger,
		Observer: observerOrNil(cfg.Observer),
	})
	return p
}

// Start performs the one-time fetch; projects are not polled.
func (p *ProjectsPage) Start(ctx context.Context) error { return p.collection.Start(ctx) }

// Stop is a no-op for symmetry with polled pages.
func (p *ProjectsPage) Stop() { p.collection.Stop() }

// Projects returns the mirror sorted by creation time, oldest first.
func (p *ProjectsPage) Projects() []models.Project { return p.collection.Snapshot() }

// Form exposes the modal controller for the view layer.
func (p *ProjectsPage) Form() *form.Controller[ProjectDraft] { return p.form }

// OpenEdit seeds the edit modal from the project's current values.
func (p *ProjectsPage) OpenEdit(id int64) error {
	for _, pr := range p.collection.Snapshot() {
		if pr.ID == id {
			p.form.OpenEdit(id, ProjectDraft{Title: pr.Title, Description: pr.Description, Status: pr.Status})
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "project not found")
}

// Add validates the draft and dispatches the create.
func (p *ProjectsPage) Add(ctx context.Context, draft ProjectDraft) error {
	start := time.Now()
	err := p.add(ctx, draft)
	observe(p.observer, "projects", "add", err, start)
	return err
}

func (p *ProjectsPage) add(ctx context.Context, draft ProjectDraft) error {
	if err := p.validate.Struct(draft); err != nil {
		p.notifier.Error(validationMessage(err))
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	if !p.form.TryBegin() {
		return appErrors.ErrMutationInFlight
	}
	defer p.form.End()

	created, err := p.api.CreateProject(ctx, remote.ProjectPayload{Title: draft.Title, Description: draft.Description, Status: draft.Status})
	if err != nil {
		p.logger.Sugar().Warnw("add project failed", "error", err)
		p.notifier.Error("Failed to add project. Try again.")
		return err
	}
	if patchErr := p.collection.ApplyCreate(*created); patchErr != nil {
		p.notifier.Error("Project saved but response was malformed.")
		return patchErr
	}
	p.form.Close()
	p.notifier.Success("Project added successfully!")
	return nil
}

// Edit validates the draft and dispatches the update.
func (p *ProjectsPage) Edit(ctx context.Context, id int64, draft ProjectDraft) error {
	start := time.Now()
	err := p.edit(ctx, id, draft)
	observe(p.observer, "projects", "edit", err, start)
	return err
}

func (p *ProjectsPage) edit(ctx context.Context, id int64, draft ProjectDraft) error {
	if err := p.validate.Struct(draft); err != nil {
		p.notifier.Error(validationMessage(err))
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	if !p.form.TryBegin() {
		return appErrors.ErrMutationInFlight
	}
	defer p.form.End()

	updated, err := p.api.UpdateProject(ctx, id, remote.ProjectPayload{Title: draft.Title, Description: draft.Description, Status: draft.Status})
	if err != nil {
		p.logger.Sugar().Warnw("edit project failed", "id", id, "error", err)
		p.notifier.Error("Failed to update project. Try again.")
		return err
	}
	if patchErr := p.collection.ApplyUpdate(*updated); patchErr != nil {
		p.notifier.Error("Project saved but response was malformed.")
		return patchErr
	}
	p.form.Close()
	p.notifier.Success("Project updated successfully!")
	return nil
}

// BeginDelete opens the confirm dialog for the project.
func (p *ProjectsPage) BeginDelete(id int64) { p.form.BeginDelete(id) }

// CancelDelete discards the pending target without a network call.
func (p *ProjectsPage) CancelDelete() { p.form.Close() }

// Delete dispatches the confirmed delete.
func (p *ProjectsPage) Delete(ctx context.Context) error {
	start := time.Now()
	err := p.deleteProject(ctx)
	observe(p.observer, "projects", "delete", err, start)
	return err
}

func (p *ProjectsPage) deleteProject(ctx context.Context) error {
	target := p.form.DeleteTarget()
	if target == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "no delete pending")
	}
	if !p.form.TryBegin() {
		return appErrors.ErrMutationInFlight
	}
	defer p.form.End()

	if err := p.api.DeleteProject(ctx, target); err != nil {
		p.logger.Sugar().Warnw("delete project failed", "id", target, "error", err)
		p.notifier.Error("Failed to delete project. Try again.")
		return err
	}
	p.collection.ApplyDelete(target)
	p.form.Close()
	p.notifier.Success("Project deleted successfully!")
	return nil
}
