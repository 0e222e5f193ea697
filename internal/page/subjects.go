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

type subjectAPI interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	CreateSubject(ctx context.Context, payload remote.SubjectPayload) (*models.Subject, error)
	UpdateSubject(ctx context.Context, id int64, payload remote.SubjectPayload) (*models.Subject, error)
	DeleteSubject(ctx context.Context, id int64) error
}

// SubjectDraft holds the add/edit form fields for a subject.
type SubjectDraft struct {
	SubjectName string                 `json:"subject_name" validate:"required"`
	Category    models.SubjectCategory `json:"category" validate:"required,subject_category"`
	Status      models.SubjectStatus   `json:"status" validate:"required,subject_status"`
	Priority    models.SubjectPriority `json:"priority" validate:"required,subject_priority"`
	Grade       *string                `json:"grade,omitempty"`
	Semester    *string                `json:"semester,omitempty"`
	SchoolYear  *string                `json:"school_year,omitempty"`
	Description *string                `json:"description,omitempty"`
}

func defaultSubjectDraft() SubjectDraft {
	return SubjectDraft{
		Category: models.CategoryProgramming,
		Status:   models.SubjectPending,
		Priority: models.PriorityLow,
	}
}

// SubjectsPage keeps the courses view in sync: a category-grouped mirror
// refreshed on a 5s poll, patched optimistically on every mutation.
type SubjectsPage struct {
	api        subjectAPI
	collection *mirror.Collection[models.Subject]
	form       *form.Controller[SubjectDraft]
	notifier   *notify.Notifier
	validator  *validator.Validate
	observer   MutationObserver
	logger     *zap.Logger
}

// SubjectsPageConfig wires the page's collaborators.
type SubjectsPageConfig struct {
	API          subjectAPI
	Notifier     *notify.Notifier
	PollInterval time.Duration
	Observer     MutationObserver
	Logger       *zap.Logger
}

// NewSubjectsPage constructs the page.
func NewSubjectsPage(cfg SubjectsPageConfig) *SubjectsPage {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.New(0)
	}

	groupOrder := make([]string, 0, len(models.SubjectCategories))
	for _, c := range models.SubjectCategories {
		groupOrder = append(groupOrder, string(c))
	}

	p := &SubjectsPage{
		api:       cfg.API,
		form:      form.NewController(defaultSubjectDraft),
		notifier:  cfg.Notifier,
		validator: newValidator(),
		observer:  cfg.Observer,
		logger:    cfg.Logger,
	}
	p.collection = mirror.NewCollection(mirror.Options[models.Subject]{
		Name:       "subjects",
		Fetch:      cfg.API.ListSubjects,
		ID:         func(s models.Subject) int64 { return s.ID },
		GroupKey:   func(s models.Subject) string { return string(s.Category) },
		GroupOrder: groupOrder,
		Interval:   cfg.PollInterval,
		Logger:     cfg.Logger,
		Observer:   observerOrNil(cfg.Observer),
	})
	return p
}

// Start begins the initial fetch and the poll loop.
func (p *SubjectsPage) Start(ctx context.Context) error { return p.collection.Start(ctx) }

// Stop cancels the poll loop.
func (p *SubjectsPage) Stop() { p.collection.Stop() }

// Loaded gates the initial render, mirroring the courses page loading flag.
func (p *SubjectsPage) Loaded() bool { return p.collection.Loaded() }

// Groups returns subjects grouped by category in fixed category order.
func (p *SubjectsPage) Groups() ([]string, map[string][]models.Subject) {
	return p.collection.Groups()
}

// Subjects returns the flat mirror.
func (p *SubjectsPage) Subjects() []models.Subject { return p.collection.Snapshot() }

// Form exposes the modal controller for the view layer.
func (p *SubjectsPage) Form() *form.Controller[SubjectDraft] { return p.form }

// OpenEdit seeds the edit modal from the subject's current values.
func (p *SubjectsPage) OpenEdit(id int64) error {
	for _, s := range p.collection.Snapshot() {
		if s.ID == id {
			p.form.OpenEdit(id, SubjectDraft{
				SubjectName: s.SubjectName,
				Category:    s.Category,
				Status:      s.Status,
				Priority:    s.Priority,
				Grade:       s.Grade,
				Semester:    s.Semester,
				SchoolYear:  s.SchoolYear,
				Description: s.Description,
			})
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
}

// Add validates the draft and dispatches the create. On success the new
// subject is patched into the mirror ahead of the next poll, the modal
// closes, and the draft resets.
func (p *SubjectsPage) Add(ctx context.Context, draft SubjectDraft) error {
	start := time.Now()
	err := p.add(ctx, draft)
	observe(p.observer, "subjects", "add", err, start)
	return err
}

func (p *SubjectsPage) add(ctx context.Context, draft SubjectDraft) error {
	if err := p.validator.Struct(draft); err != nil {
		p.notifier.Error(validationMessage(err))
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	if !p.form.TryBegin() {
		return appErrors.ErrMutationInFlight
	}
	defer p.form.End()

	created, err := p.api.CreateSubject(ctx, subjectPayload(draft))
	if err != nil {
		p.logger.Sugar().Warnw("add subject failed", "error", err)
		p.notifier.Error("Failed to add subject. Try again.")
		return err
	}
	if patchErr := p.collection.ApplyCreate(*created); patchErr != nil {
		p.notifier.Error("Subject saved but response was malformed.")
		return patchErr
	}
	p.form.Close()
	p.notifier.Success("Subject added successfully!")
	return nil
}

// Edit validates the draft and dispatches the update. A category change
// moves the subject between groups in the same local patch.
func (p *SubjectsPage) Edit(ctx context.Context, id int64, draft SubjectDraft) error {
	start := time.Now()
	err := p.edit(ctx, id, draft)
	observe(p.observer, "subjects", "edit", err, start)
	return err
}

func (p *SubjectsPage) edit(ctx context.Context, id int64, draft SubjectDraft) error {
	if err := p.validator.Struct(draft); err != nil {
		p.notifier.Error(validationMessage(err))
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	if !p.form.TryBegin() {
		return appErrors.ErrMutationInFlight
	}
	defer p.form.End()

	updated, err := p.api.UpdateSubject(ctx, id, subjectPayload(draft))
	if err != nil {
		p.logger.Sugar().Warnw("edit subject failed", "id", id, "error", err)
		p.notifier.Error("Failed to update subject. Try again.")
		return err
	}
	if patchErr := p.collection.ApplyUpdate(*updated); patchErr != nil {
		p.notifier.Error("Subject saved but response was malformed.")
		return patchErr
	}
	p.form.Close()
	p.notifier.Success("Subject updated successfully!")
	return nil
}

// BeginDelete opens the confirm dialog for the subject.
func (p *SubjectsPage) BeginDelete(id int64) { p.form.BeginDelete(id) }

// CancelDelete discards the pending target without a network call.
func (p *SubjectsPage) CancelDelete() { p.form.Close() }

// Delete dispatches the confirmed delete and removes the subject from
// every category group.
func (p *SubjectsPage) Delete(ctx context.Context) error {
	start := time.Now()
	err := p.delete(ctx)
	observe(p.observer, "subjects", "delete", err, start)
	return err
}

func (p *SubjectsPage) delete(ctx context.Context) error {
	target := p.form.DeleteTarget()
	if target == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "no delete pending")
	}
	if !p.form.TryBegin() {
		return appErrors.ErrMutationInFlight
	}
	defer p.form.End()

	if err := p.api.DeleteSubject(ctx, target); err != nil {
		p.logger.Sugar().Warnw("delete subject failed", "id", target, "error", err)
		p.notifier.Error("Failed to delete subject. Try again.")
		return err
	}
	p.collection.ApplyDelete(target)
	p.form.Close()
	p.notifier.Success("Subject deleted successfully!")
	return nil
}

func subjectPayload(draft SubjectDraft) remote.SubjectPayload {
	return remote.SubjectPayload{
		SubjectName: draft.SubjectName,
		Category:    draft.Category,
		Status:      draft.Status,
		Priority:    draft.Priority,
		Grade:       draft.Grade,
		Semester:    draft.Semester,
		SchoolYear:  draft.SchoolYear,
		Description: draft.Description,
	}
}
