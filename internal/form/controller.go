package form

import "sync"

// Mode is the explicit modal state. Exactly one variant is active at a
// time, which rules out the "add and edit modal both open" class of bug.
type Mode string

const (
	ModeClosed           Mode = "closed"
	ModeAdding           Mode = "adding"
	ModeEditing          Mode = "editing"
	ModeConfirmingDelete Mode = "confirming_delete"
)

// Controller holds the draft record for one resource's add/edit modal plus
// the pending delete target for the confirm dialog. D is the draft shape.
//
// Opening the edit mode seeds the draft from the target entity's current
// values, never from prior-draft leftovers; closing always resets the draft
// to defaults so a subsequent add does not inherit an old edit's values.
type Controller[D any] struct {
	defaults func() D

	mu           sync.Mutex
	mode         Mode
	draft        D
	editingID    int64
	deleteTarget int64
	inFlight     bool
}

// NewController builds a controller; defaults produces a freshly
// initialized draft (enum fields at their documented initial values).
func NewController[D any](defaults func() D) *Controller[D] {
	c := &Controller[D]{defaults: defaults, mode: ModeClosed}
	c.draft = defaults()
	return c
}

// Mode returns the active modal variant.
func (c *Controller[D]) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Draft returns the current draft values.
func (c *Controller[D]) Draft() D {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// EditingID returns the target entity id while in ModeEditing, else 0.
func (c *Controller[D]) EditingID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeEditing {
		return 0
	}
	return c.editingID
}

// OpenAdd switches to the add modal with a default-initialized draft.
func (c *Controller[D]) OpenAdd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeAdding
	c.draft = c.defaults()
	c.editingID = 0
	c.deleteTarget = 0
}

// OpenEdit switches to the edit modal, seeding the draft from the entity.
func (c *Controller[D]) OpenEdit(id int64, seed D) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeEditing
	c.draft = seed
	c.editingID = id
	c.deleteTarget = 0
}

// SetDraft stores edited field values while a modal is open.
func (c *Controller[D]) SetDraft(draft D) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeAdding || c.mode == ModeEditing {
		c.draft = draft
	}
}

// BeginDelete opens the confirm dialog holding the pending target.
func (c *Controller[D]) BeginDelete(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeConfirmingDelete
	c.deleteTarget = id
}

// DeleteTarget returns the pending delete target while confirming, else 0.
func (c *Controller[D]) DeleteTarget() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeConfirmingDelete {
		return 0
	}
	return c.deleteTarget
}

// Close cancels whatever is open and resets the draft to defaults. Called
// both on cancel and after a successful save.
func (c *Controller[D]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeClosed
	c.draft = c.defaults()
	c.editingID = 0
	c.deleteTarget = 0
}

// TryBegin marks a mutation in flight, disabling the triggering control.
// Returns false if one is already running so a rapid double submit issues
// a single request.
func (c *Controller[D]) TryBegin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	c.inFlight = true
	return true
}

// End re-enables submission after the mutation settles, success or failure.
func (c *Controller[D]) End() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
}

// InFlight reports whether a mutation is currently running.
func (c *Controller[D]) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}
