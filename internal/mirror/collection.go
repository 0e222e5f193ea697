package mirror

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
)

// Fetcher loads the full remote collection.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Observer receives poll outcomes, typically backed by Prometheus counters.
type Observer interface {
	PollTick(resource string, success bool, duration time.Duration)
}

// Options configure a Collection.
type Options[T any] struct {
	// Name identifies the resource in logs and metrics.
	Name string
	// Fetch loads the authoritative collection from the backend.
	Fetch Fetcher[T]
	// ID extracts the entity identity used by ApplyUpdate/ApplyDelete.
	ID func(T) int64
	// GroupKey partitions entities for Groups. Nil means ungrouped.
	GroupKey func(T) string
	// GroupOrder fixes the order of group keys. Keys listed here appear
	// even when empty; unknown keys are appended in first-seen order.
	GroupOrder []string
	// Less sorts the mirror after every replace or patch. Nil keeps
	// server order.
	Less func(a, b T) bool
	// Interval is the polling period. Zero means fetch once on Start.
	Interval time.Duration

	Logger   *zap.Logger
	Observer Observer
}

// Collection is a local mirror of one remote collection: refreshed wholesale
// by a poll loop and patched optimistically after successful mutations. The
// mirror only ever contains entities present in the last successful fetch or
// mutation-response merge; any drift is reconciled by the next poll tick.
type Collection[T any] struct {
	name       string
	fetch      Fetcher[T]
	id         func(T) int64
	groupKey   func(T) string
	groupOrder []string
	less       func(a, b T) bool
	interval   time.Duration
	logger     *zap.Logger
	observer   Observer

	mu         sync.RWMutex
	items      []T
	generation uint64
	loaded     bool

	runMu   sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// NewCollection builds a collection around a fetch function.
func NewCollection[T any](opts Options[T]) *Collection[T] {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Collection[T]{
		name:       opts.Name,
		fetch:      opts.Fetch,
		id:         opts.ID,
		groupKey:   opts.GroupKey,
		groupOrder: opts.GroupOrder,
		less:       opts.Less,
		interval:   opts.Interval,
		logger:     opts.Logger,
		observer:   opts.Observer,
	}
}

// Start fetches the collection once, then keeps polling on the configured
// interval until Stop. A stopped collection may be started again. The
// initial fetch error is returned so callers can refuse to render an
// unloaded page; subsequent poll failures are logged, counted, and skipped
// with the previous mirror retained.
func (c *Collection[T]) Start(ctx context.Context) error {
	c.runMu.Lock()
	if c.started {
		c.runMu.Unlock()
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.started = true

	if c.interval > 0 {
		c.wg.Add(1)
		go c.pollLoop(runCtx)
	}
	c.runMu.Unlock()

	return c.Refresh(ctx)
}

// Stop cancels the poll timer and waits for the loop to exit. An in-flight
// fetch is not cancelled; its result is simply discarded once the loop
// observes cancellation, so no update lands after Stop returns.
func (c *Collection[T]) Stop() {
	c.runMu.Lock()
	if !c.started {
		c.runMu.Unlock()
		return
	}
	c.cancel()
	c.runMu.Unlock()
	c.wg.Wait()

	c.runMu.Lock()
	c.started = false
	c.runMu.Unlock()
}

func (c *Collection[T]) pollLoop(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			err := c.Refresh(ctx)
			if ctx.Err() != nil {
				return
			}
			if c.observer != nil {
				c.observer.PollTick(c.name, err == nil, time.Since(start))
			}
			if err != nil {
				c.logger.Sugar().Warnw("poll failed, keeping previous mirror", "resource", c.name, "error", err)
			}
		}
	}
}

// Refresh performs one full-replace reconciliation from the backend.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	items, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	c.mu.Lock()
	c.items = c.sorted(items)
	c.generation++
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Snapshot returns a sorted copy of the flat mirror.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Groups returns the mirror partitioned by the group key, with keys in
// GroupOrder (empty groups included) followed by any unlisted keys in
// first-seen order.
func (c *Collection[T]) Groups() ([]string, map[string][]T) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	groups := make(map[string][]T)
	keys := make([]string, 0, len(c.groupOrder))
	for _, key := range c.groupOrder {
		groups[key] = nil
		keys = append(keys, key)
	}
	for _, item := range c.items {
		key := ""
		if c.groupKey != nil {
			key = c.groupKey(item)
		}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], item)
	}
	return keys, groups
}

// Loaded reports whether at least one fetch has succeeded.
func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Generation increments on every full replace, letting tests and callers
// detect that a poll tick has landed.
func (c *Collection[T]) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// ApplyCreate appends an entity returned by a successful create. Entities
// without an id are rejected rather than inserted malformed.
func (c *Collection[T]) ApplyCreate(item T) error {
	if c.id != nil && c.id(item) == 0 {
		return appErrors.Clone(appErrors.ErrMalformedEntity, "create response entity has no id")
	}
	c.mu.Lock()
	c.items = c.sorted(append(c.copyItems(), item))
	c.mu.Unlock()
	return nil
}

// ApplyUpdate replaces the entity matched by id. Regrouping is implicit:
// Groups recomputes keys from current field values, so an update that
// changes the partition key moves the entity to its new group. An id the
// mirror does not hold is appended; the next poll settles any disagreement.
func (c *Collection[T]) ApplyUpdate(item T) error {
	if c.id == nil {
		return appErrors.Clone(appErrors.ErrInternal, "collection has no id extractor")
	}
	if c.id(item) == 0 {
		return appErrors.Clone(appErrors.ErrMalformedEntity, "update response entity has no id")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.copyItems()
	replaced := false
	for i := range items {
		if c.id(items[i]) == c.id(item) {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}
	c.items = c.sorted(items)
	return nil
}

// ApplyDelete removes the entity matched by id from the mirror, and with it
// from every group it could appear in.
func (c *Collection[T]) ApplyDelete(id int64) {
	if c.id == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if c.id(item) != id {
			items = append(items, item)
		}
	}
	c.items = items
}

// Patch applies an arbitrary local transformation under the mirror lock.
// This is the incremental-patch path for nested collections (tasks inside
// todo lists, notes inside subject groups): the function receives a copy of
// the mirror and must return the replacement slice without mutating shared
// nested slices in place.
func (c *Collection[T]) Patch(fn func(items []T) []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = c.sorted(fn(c.copyItems()))
}

func (c *Collection[T]) copyItems() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) sorted(items []T) []T {
	if c.less != nil {
		sort.SliceStable(items, func(i, j int) bool { return c.less(items[i], items[j]) })
	}
	return items
}
