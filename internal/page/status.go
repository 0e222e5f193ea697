package page

import (
	"context"
	"sync"
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

type todoListAPI interface {
	ListTodoLists(ctx context.Context) ([]models.TodoList, error)
	CreateTodoList(ctx context.Context, payload remote.TodoListPayload) (*models.TodoList, error)
	UpdateTodoList(ctx context.Context, id int64, payload remote.TodoListPayload) (*models.TodoList, error)
	DeleteTodoList(ctx context.Context, id int64) error
	AddTask(ctx context.Context, listID int64, payload remote.TaskPayload) (*models.Task, error)
	ToggleTask(ctx context.Context, taskID int64) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID int64) error
}

// TodoListDraft holds the add/edit form fields for a todo list.
type TodoListDraft struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

func defaultTodoListDraft() TodoListDraft { return TodoListDraft{} }

// TodoListView pairs a list with its derived status for rendering. The
// status is computed from tasks on every read, so any local task patch is
// reflected without a server round trip.
type TodoListView struct {
	models.TodoList
	Status models.ListStatus `json:"status"`
}

// StatusPage keeps the todo-list view in sync, including the nested task
// sub-resource: task add/toggle/delete patch the owning list's task slice
// locally and the derived status follows in the same update.
type StatusPage struct {
	api        todoListAPI
	collection *mirror.Collection[models.TodoList]
	form       *form.Controller[TodoListDraft]
	notifier   *notify.Notifier
	validate   *validator.Validate
	observer   MutationObserver
	logger     *zap.Logger

	// Task rows mutate outside the modal, so they carry their own
	// in-flight flag instead of sharing the form controller's.
	taskMu   sync.Mutex
	taskBusy bool
}

// StatusPageConfig wires the page's collaborators.
type StatusPageConfig struct {
	API      todoListAPI
	Notifier *notify.Notifier
	Observer MutationObserver
	Logger   *zap.Logger
}

// NewStatusPage constructs the page.
func NewStatusPage(cfg StatusPageConfig) *StatusPage {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.New(0)
	}

	p := &StatusPage{
		api:      cfg.API,
		form:     form.NewController(defaultTodoListDraft),
		notifier: cfg.Notifier,
		validate: newValidator(),
		observer: cfg.Observer,
		logger:   cfg.Logger,
	}
	p.collection = mirror.NewCollection(mirror.Options[models.TodoList]{
		Name:  "todolists",
		Fetch: cfg.API.ListTodoLists,
		ID:    func(l models.TodoList) int64 { return l.ID },
		Less: func(a, b models.TodoList) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		},
		Logger:   cfg.Logger,
		Observer: observerOrNil(cfg.Observer),
	})
	return p
}

// Start performs the one-time fetch; todo lists are not polled.
func (p *StatusPage) Start(ctx context.Context) error { return p.collection.Start(ctx) }

// Stop is a no-op for symmetry with polled pages.
func (p *StatusPage) Stop() { p.collection.Stop() }

// Lists returns the mirror with derived statuses, oldest list first.
func (p *StatusPage) Lists() []TodoListView {
	lists := p.collection.Snapshot()
	views := make([]TodoListView, 0, len(lists))
	for _, l := range lists {
		views = append(views, TodoListView{TodoList: l, Status: l.DerivedStatus()})
	}
	return views
}

// Form exposes the modal controller for the view layer.
func (p *StatusPage) Form() *form.Controller[TodoListDraft] { return p.form }

// OpenEdit seeds the edit modal from the list's current values.
func (p *StatusPage) OpenEdit(id int64) error {
	for _, l := range p.collection.Snapshot() {
		if l.ID == id {
			p.form.OpenEdit(id, TodoListDraft{Title: l.Title, Description: l.Description})
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "list not found")
}

// Add validates the draft and dispatches the create.
func (p *StatusPage) Add(ctx context.Context, draft TodoListDraft) error {
	start := time.Now()
	err := p.add(ctx, draft)
	observe(p.observer, "todolists", "add", err, start)
	return err
}

func (p *StatusPage) add(ctx context.Context, draft TodoListDraft) error {
	if err := p.validate.Struct(draft); err != nil {
		p.notifier.Error(validationMessage(err))
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	if !p.form.TryBegin() {
		return appErrors.ErrMutationInFlight
	}
	defer p.form.End()

	created, err := p.api.CreateTodoList(ctx, remote.TodoListPayload{Title: draft.Title, Description: draft.Description})
	if err != nil {
		p.logger.Sugar().Warnw("add list failed", "error", err)
		p.notifier.Error("Failed to add list. Try again.")
		return err
	}
	if patchErr := p.collection.ApplyCreate(*created); patchErr != nil {
		p.notifier.Error("List saved but response was malformed.")
		return patchErr
	}
	p.form.Close()
	p.notifier.Success("List added successfully!")
	return nil
}

// Edit validates the draft and dispatches the update. Tasks already held
// locally are preserved when the edit response omits them.
func (p *StatusPage) Edit(ctx context.Context, id int64, draft TodoListDraft) error {
	start := time.Now()
	err := p.edit(ctx, id, draft)
	observe(p.observer, "todolists", "edit", err, start)
	return err
}

func (p *StatusPage) edit(ctx context.Context, id int64, draft TodoListDraft) error {
	if err := p.validate.Struct(draft); err != nil {
		p.notifier.Error(validationMessage(err))
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	if !p.form.TryBegin() {
		return appErrors.ErrMutationInFlight
	}
	defer p.form.End()

	updated, err := p.api.UpdateTodoList(ctx, id, remote.TodoListPayload{Title: draft.Title, Description: draft.Description})
	if err != nil {
		p.logger.Sugar().Warnw("edit list failed", "id", id, "error", err)
		p.notifier.Error("Failed to update list. Try again.")
		return err
	}
	if updated.ID == 0 {
		p.notifier.Error("List saved but response was malformed.")
		return appErrors.Clone(appErrors.ErrMalformedEntity, "update response list has no id")
	}

	p.collection.Patch(func(lists []models.TodoList) []models.TodoList {
		for i, l := range lists {
			if l.ID == updated.ID {
				next := *updated
				if next.Tasks == nil {
					next.Tasks = l.Tasks
				}
				lists[i] = next
				return lists
			}
		}
		return append(lists, *updated)
	})
	p.form.Close()
	p.notifier.Success("List updated successfully!")
	return nil
}

// BeginDelete opens the confirm dialog for the list.
func (p *StatusPage) BeginDelete(id int64) { p.form.BeginDelete(id) }

// CancelDelete discards the pending target without a network call.
func (p *StatusPage) CancelDelete() { p.form.Close() }

// Delete dispatches the confirmed delete.
func (p *StatusPage) Delete(ctx context.Context) error {
	start := time.Now()
	err := p.deleteList(ctx)
	observe(p.observer, "todolists", "delete", err, start)
	return err
}

func (p *StatusPage) deleteList(ctx context.Context) error {
	target := p.form.DeleteTarget()
	if target == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "no delete pending")
	}
	if !p.form.TryBegin() {
		return appErrors.ErrMutationInFlight
	}
	defer p.form.End()

	if err := p.api.DeleteTodoList(ctx, target); err != nil {
		p.logger.Sugar().Warnw("delete list failed", "id", target, "error", err)
		p.notifier.Error("Failed to delete list. Try again.")
		return err
	}
	p.collection.ApplyDelete(target)
	p.form.Close()
	p.notifier.Success("List deleted successfully!")
	return nil
}

func (p *StatusPage) tryBeginTask() bool {
	p.taskMu.Lock()
	defer p.taskMu.Unlock()
	if p.taskBusy {
		return false
	}
	p.taskBusy = true
	return true
}

func (p *StatusPage) endTask() {
	p.taskMu.Lock()
	p.taskBusy = false
	p.taskMu.Unlock()
}

// AddTask appends a task to a list; the owning list's derived status
// follows the patched task slice immediately.
func (p *StatusPage) AddTask(ctx context.Context, listID int64, label string) error {
	start := time.Now()
	err := p.addTask(ctx, listID, label)
	observe(p.observer, "tasks", "add", err, start)
	return err
}

func (p *StatusPage) addTask(ctx context.Context, listID int64, label string) error {
	if label == "" {
		p.notifier.Error("Please enter a task label.")
		return appErrors.Clone(appErrors.ErrValidation, "task label is required")
	}
	if !p.tryBeginTask() {
		return appErrors.ErrMutationInFlight
	}
	defer p.endTask()

	created, err := p.api.AddTask(ctx, listID, remote.TaskPayload{Label: label})
	if err != nil {
		p.logger.Sugar().Warnw("add task failed", "list_id", listID, "error", err)
		p.notifier.Error("Failed to add task. Try again.")
		return err
	}
	if created.ID == 0 {
		p.notifier.Error("Task saved but response was malformed.")
		return appErrors.Clone(appErrors.ErrMalformedEntity, "create response task has no id")
	}

	p.collection.Patch(func(lists []models.TodoList) []models.TodoList {
		for i, l := range lists {
			if l.ID == listID {
				tasks := make([]models.Task, 0, len(l.Tasks)+1)
				tasks = append(tasks, l.Tasks...)
				lists[i].Tasks = append(tasks, *created)
				return lists
			}
		}
		return lists
	})
	p.notifier.Success("Task added successfully!")
	return nil
}

// ToggleTask flips a task's completed flag through its dedicated endpoint.
func (p *StatusPage) ToggleTask(ctx context.Context, taskID int64) error {
	start := time.Now()
	err := p.toggleTask(ctx, taskID)
	observe(p.observer, "tasks", "toggle", err, start)
	return err
}

func (p *StatusPage) toggleTask(ctx context.Context, taskID int64) error {
	if !p.tryBeginTask() {
		return appErrors.ErrMutationInFlight
	}
	defer p.endTask()

	toggled, err := p.api.ToggleTask(ctx, taskID)
	if err != nil {
		p.logger.Sugar().Warnw("toggle task failed", "task_id", taskID, "error", err)
		p.notifier.Error("Failed to update task. Try again.")
		return err
	}

	p.collection.Patch(func(lists []models.TodoList) []models.TodoList {
		for i, l := range lists {
			for j, t := range l.Tasks {
				if t.ID == taskID {
					tasks := make([]models.Task, len(l.Tasks))
					copy(tasks, l.Tasks)
					tasks[j] = *toggled
					lists[i].Tasks = tasks
					return lists
				}
			}
		}
		return lists
	})
	return nil
}

// DeleteTask removes a task from its list.
func (p *StatusPage) DeleteTask(ctx context.Context, taskID int64) error {
	start := time.Now()
	err := p.deleteTask(ctx, taskID)
	observe(p.observer, "tasks", "delete", err, start)
	return err
}

func (p *StatusPage) deleteTask(ctx context.Context, taskID int64) error {
	if !p.tryBeginTask() {
		return appErrors.ErrMutationInFlight
	}
	defer p.endTask()

	if err := p.api.DeleteTask(ctx, taskID); err != nil {
		p.logger.Sugar().Warnw("delete task failed", "task_id", taskID, "error", err)
		p.notifier.Error("Failed to delete task. Try again.")
		return err
	}

	p.collection.Patch(func(lists []models.TodoList) []models.TodoList {
		for i, l := range lists {
			tasks := make([]models.Task, 0, len(l.Tasks))
			removed := false
			for _, t := range l.Tasks {
				if t.ID == taskID {
					removed = true
					continue
				}
				tasks = append(tasks, t)
			}
			if removed {
				lists[i].Tasks = tasks
				return lists
			}
		}
		return lists
	})
	return nil
}
