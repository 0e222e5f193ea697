package page

import (
	"context"
	"strings"
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

type noteAPI interface {
	FetchNoteGroups(ctx context.Context) ([]models.NoteGroup, error)
	CreateNote(ctx context.Context, payload remote.NotePayload) (*models.Note, error)
	UpdateNote(ctx context.Context, id int64, payload remote.NotePayload) (*models.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	ListSubjects(ctx context.Context) ([]models.Subject, error)
}

// NoteDraft holds the add/edit form fields for a note.
type NoteDraft struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	SubjectID int64  `json:"subject_id"`
}

func defaultNoteDraft() NoteDraft { return NoteDraft{} }

// NotesPage keeps the notes view in sync. The backend returns notes
// pre-grouped by subject; the mirror holds those groups as-is on a 3s poll
// and patches inside them on note mutations. Subjects are fetched once for
// the add-form dropdown and the "add a subject first" precondition.
type NotesPage struct {
	api      noteAPI
	groups   *mirror.Collection[models.NoteGroup]
	subjects *mirror.Collection[models.Subject]
	form     *form.Controller[NoteDraft]
	notifier *notify.Notifier
	validate *validator.Validate
	observer MutationObserver
	logger   *zap.Logger
}

// NotesPageConfig wires the page's collaborators.
type NotesPageConfig struct {
	API          noteAPI
	Notifier     *notify.Notifier
	PollInterval time.Duration
	Observer     MutationObserver
	Logger       *zap.Logger
}

// NewNotesPage constructs the page.
func NewNotesPage(cfg NotesPageConfig) *NotesPage {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.New(0)
	}

	p := &NotesPage{
		api:      cfg.API,
		form:     form.NewController(defaultNoteDraft),
		notifier: cfg.Notifier,
		validate: newValidator(),
		observer: cfg.Observer,
		logger:   cfg.Logger,
	}
	p.groups = mirror.NewCollection(mirror.Options[models.NoteGroup]{
		Name:     "notes",
		Fetch:    cfg.API.FetchNoteGroups,
		ID:       func(g models.NoteGroup) int64 { return g.SubjectID },
		Interval: cfg.PollInterval,
		Logger:   cfg.Logger,
		Observer: observerOrNil(cfg.Observer),
	})
	p.subjects = mirror.NewCollection(mirror.Options[models.Subject]{
		Name:   "notes_subjects",
		Fetch:  cfg.API.ListSubjects,
		ID:     func(s models.Subject) int64 { return s.ID },
		Logger: cfg.Logger,
	})
	return p
}

// Start fetches both collections and begins the notes poll loop.
func (p *NotesPage) Start(ctx context.Context) error {
	if err := p.subjects.Start(ctx); err != nil {
		p.logger.Sugar().Warnw("initial subjects fetch failed", "error", err)
	}
	return p.groups.Start(ctx)
}

// Stop cancels the poll loop.
func (p *NotesPage) Stop() {
	p.groups.Stop()
	p.subjects.Stop()
}

// Groups returns the mirrored note groups.
func (p *NotesPage) Groups() []models.NoteGroup { return p.groups.Snapshot() }

// Subjects returns the subjects available in the add-form dropdown.
func (p *NotesPage) Subjects() []models.Subject { return p.subjects.Snapshot() }

// Search returns only groups whose subject name contains the term,
// case-insensitively. An empty term returns everything.
func (p *NotesPage) Search(term string) []models.NoteGroup {
	all := p.groups.Snapshot()
	if term == "" {
		return all
	}
	needle := strings.ToLower(term)
	matched := make([]models.NoteGroup, 0, len(all))
	for _, g := range all {
		if strings.Contains(strings.ToLower(g.SubjectName), needle) {
			matched = append(matched, g)
		}
	}
	return matched
}

// Form exposes the modal controller for the view layer.
func (p *NotesPage) Form() *form.Controller[NoteDraft] { return p.form }

// OpenAdd opens the add modal, refusing when no subjects exist yet.
func (p *NotesPage) OpenAdd() error {
	if len(p.subjects.Snapshot()) == 0 {
		p.notifier.Error("Please add a subject first before creating notes.")
		return appErrors.Clone(appErrors.ErrValidation, "no subjects to attach notes to")
	}
	p.form.OpenAdd()
	return nil
}

// OpenEdit seeds the edit modal from the note's current values.
func (p *NotesPage) OpenEdit(id int64) error {
	for _, g := range p.groups.Snapshot() {
		for _, n := range g.Notes {
			if n.ID == id {
				p.form.OpenEdit(id, NoteDraft{Title: n.Title, Content: n.Content, SubjectID: n.SubjectID})
				return nil
			}
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "note not found")
}

// Add validates the draft, dispatches the create, and patches the new note
// into its subject group (creating the group if the subject had none).
func (p *NotesPage) Add(ctx context.Context, draft NoteDraft) error {
	start := time.Now()
	err := p.add(ctx, draft)
	observe(p.observer, "notes", "add", err, start)
	return err
}

func (p *NotesPage) add(ctx context.Context, draft NoteDraft) error {
	if err := p.validate.Struct(draft); err != nil {
		p.notifier.Error(validationMessage(err))
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	if draft.SubjectID == 0 {
		p.notifier.Error("Please select a subject.")
		return appErrors.Clone(appErrors.ErrValidation, "subject is required")
	}
	if !p.form.TryBegin() {
		return appErrors.ErrMutationInFlight
	}
	defer p.form.End()

	created, err := p.api.CreateNote(ctx, remote.NotePayload{Title: draft.Title, Content: draft.Content, SubjectID: draft.SubjectID})
	if err != nil {
		p.logger.Sugar().Warnw("add note failed", "error", err)
		p.notifier.Error("Failed to add note. Try again.")
		return err
	}
	if created.ID == 0 {
		p.notifier.Error("Note saved but response was malformed.")
		return appErrors.Clone(appErrors.ErrMalformedEntity, "create response note has no id")
	}

	p.groups.Patch(func(groups []models.NoteGroup) []models.NoteGroup {
		for i, g := range groups {
			if g.SubjectID == created.SubjectID {
				notes := make([]models.Note, 0, len(g.Notes)+1)
				notes = append(notes, g.Notes...)
				groups[i].Notes = append(notes, *created)
				return groups
			}
		}
		return append(groups, models.NoteGroup{
			SubjectID:   created.SubjectID,
			SubjectName: p.subjectName(created.SubjectID),
			Notes:       []models.Note{*created},
		})
	})
	p.form.Close()
	p.notifier.Success("Note added successfully!")
	return nil
}

// Edit validates the draft and dispatches the update, replacing the note
// in place inside its group.
func (p *NotesPage) Edit(ctx context.Context, id int64, draft NoteDraft) error {
	start := time.Now()
	err := p.edit(ctx, id, draft)
	observe(p.observer, "notes", "edit", err, start)
	return err
}

func (p *NotesPage) edit(ctx context.Context, id int64, draft NoteDraft) error {
	if err := p.validate.Struct(draft); err != nil {
		p.notifier.Error(validationMessage(err))
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	if !p.form.TryBegin() {
		return appErrors.ErrMutationInFlight
	}
	defer p.form.End()

	updated, err := p.api.UpdateNote(ctx, id, remote.NotePayload{Title: draft.Title, Content: draft.Content, SubjectID: draft.SubjectID})
	if err != nil {
		p.logger.Sugar().Warnw("edit note failed", "id", id, "error", err)
		p.notifier.Error("Failed to update note. Try again.")
		return err
	}
	if updated.ID == 0 {
		p.notifier.Error("Note saved but response was malformed.")
		return appErrors.Clone(appErrors.ErrMalformedEntity, "update response note has no id")
	}

	p.groups.Patch(func(groups []models.NoteGroup) []models.NoteGroup {
		for i, g := range groups {
			for j, n := range g.Notes {
				if n.ID == updated.ID {
					notes := make([]models.Note, len(g.Notes))
					copy(notes, g.Notes)
					notes[j] = *updated
					groups[i].Notes = notes
					return groups
				}
			}
		}
		return groups
	})
	p.form.Close()
	p.notifier.Success("Note updated successfully!")
	return nil
}

// BeginDelete opens the confirm dialog for the note.
func (p *NotesPage) BeginDelete(id int64) { p.form.BeginDelete(id) }

// CancelDelete discards the pending target without a network call.
func (p *NotesPage) CancelDelete() { p.form.Close() }

// Delete dispatches the confirmed delete, removing the note from its group
// and dropping the group once empty.
func (p *NotesPage) Delete(ctx context.Context) error {
	start := time.Now()
	err := p.deleteNote(ctx)
	observe(p.observer, "notes", "delete", err, start)
	return err
}

func (p *NotesPage) deleteNote(ctx context.Context) error {
	target := p.form.DeleteTarget()
	if target == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "no delete pending")
	}
	if !p.form.TryBegin() {
		return appErrors.ErrMutationInFlight
	}
	defer p.form.End()

	if err := p.api.DeleteNote(ctx, target); err != nil {
		p.logger.Sugar().Warnw("delete note failed", "id", target, "error", err)
		p.notifier.Error("Failed to delete note. Try again.")
		return err
	}

	p.groups.Patch(func(groups []models.NoteGroup) []models.NoteGroup {
		out := make([]models.NoteGroup, 0, len(groups))
		for _, g := range groups {
			notes := make([]models.Note, 0, len(g.Notes))
			for _, n := range g.Notes {
				if n.ID != target {
					notes = append(notes, n)
				}
			}
			if len(notes) > 0 {
				g.Notes = notes
				out = append(out, g)
			}
		}
		return out
	})
	p.form.Close()
	p.notifier.Success("Note deleted successfully!")
	return nil
}

func (p *NotesPage) subjectName(id int64) string {
	for _, s := range p.subjects.Snapshot() {
		if s.ID == id {
			return s.SubjectName
		}
	}
	return ""
}
