package cache

import (
	"slices"
	"sync"

	"github.com/slok/cpm/internal/log"
)

// Entity is anything the cache can hold, entities are keyed by their identifier.
type Entity interface {
	EntityID() string
}

// Status is the load status of a collection.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

// State is a point in time copy of a collection.
type State[T Entity] struct {
	Items  []T
	Status Status
	// Loading is true while a fetch is in flight.
	Loading bool
	// Error is the message of the last failed fetch, it blocks the content.
	Error string
	// MutationError is the message of the last failed create, update or delete.
	MutationError string
	// SelectedID is the identifier of the selected entity, if any.
	SelectedID string
}

// Collection is the cached copy of one entity type. All the transitions are keyed by
// identifier so concurrent completions on different entities commute.
// A Collection is safe for concurrent use.
type Collection[T Entity] struct {
	items       []T
	status      Status
	err         string
	prevStatus  Status
	prevErr     string
	mutationErr string
	selectedID  string
	mu          sync.RWMutex
	logger      log.Logger
}

// NewCollection returns an idle and empty collection.
func NewCollection[T Entity](logger log.Logger) *Collection[T] {
	if logger == nil {
		logger = log.Noop
	}

	return &Collection[T]{
		items:  []T{},
		status: StatusIdle,
		logger: logger,
	}
}

// FetchStarted marks the collection as loading and clears the previous fetch error.
func (c *Collection[T]) FetchStarted() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusLoading {
		c.prevStatus, c.prevErr = c.status, c.err
	}
	c.status = StatusLoading
	c.err = ""
}

// FetchAbandoned discards an in flight fetch, the status and error it replaced are restored.
func (c *Collection[T]) FetchAbandoned() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusLoading {
		return
	}
	c.status, c.err = c.prevStatus, c.prevErr
	c.logger.Debugf("collection fetch abandoned, back to %s", c.status)
}

// FetchSucceeded replaces the whole collection with the fetched items.
func (c *Collection[T]) FetchSucceeded(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = slices.Clone(items)
	if c.items == nil {
		c.items = []T{}
	}
	c.status = StatusLoaded
	c.logger.Debugf("collection loaded with %d items", len(c.items))
}

// FetchFailed records the failure, the items are kept as they were.
func (c *Collection[T]) FetchFailed(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = StatusFailed
	c.err = message
	c.logger.Debugf("collection fetch failed: %s", message)
}

// CreateSucceeded adds a server confirmed entity. If an entity with the same identifier
// is already present (e.g. a concurrent fetch already brought it) it's replaced instead.
func (c *Collection[T]) CreateSucceeded(e T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mutationErr = ""
	if i := c.indexOf(e.EntityID()); i >= 0 {
		c.items[i] = e
		return
	}
	c.items = append(c.items, e)
	c.logger.Debugf("entity %s added", e.EntityID())
}

// UpdateSucceeded replaces the entity with the same identifier in place. Returns false
// and leaves the collection untouched when there is no such entity.
func (c *Collection[T]) UpdateSucceeded(e T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mutationErr = ""
	i := c.indexOf(e.EntityID())
	if i < 0 {
		c.logger.Debugf("updated entity %s is not cached, ignoring", e.EntityID())
		return false
	}
	c.items[i] = e
	c.logger.Debugf("entity %s updated", e.EntityID())

	return true
}

// DeleteSucceeded removes the entity with the identifier. Returns false when absent.
func (c *Collection[T]) DeleteSucceeded(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mutationErr = ""
	if c.selectedID == id {
		c.selectedID = ""
	}

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	c.logger.Debugf("entity %s removed", id)

	return true
}

// MutationFailed records a failed create, update or delete. The items are kept as they were.
func (c *Collection[T]) MutationFailed(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mutationErr = message
}

// RemoveWhere removes every entity matching the predicate and returns how many were removed.
func (c *Collection[T]) RemoveWhere(match func(T) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.items)
	c.items = slices.DeleteFunc(c.items, match)
	if c.selectedID != "" && c.indexOf(c.selectedID) < 0 {
		c.selectedID = ""
	}

	return before - len(c.items)
}

// Get returns the cached entity with the identifier.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// Items returns a copy of the cached entities in display order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.items)
}

// Select sets the selected entity by identifier, an empty identifier clears it.
func (c *Collection[T]) Select(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selectedID = id
}

// Selected returns the current cached version of the selected entity.
func (c *Collection[T]) Selected() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	if c.selectedID == "" {
		return zero, false
	}
	i := c.indexOf(c.selectedID)
	if i < 0 {
		return zero, false
	}
	return c.items[i], true
}

// State returns a copy of the whole collection state.
func (c *Collection[T]) State() State[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return State[T]{
		Items:         slices.Clone(c.items),
		Status:        c.status,
		Loading:       c.status == StatusLoading,
		Error:         c.err,
		MutationError: c.mutationErr,
		SelectedID:    c.selectedID,
	}
}

func (c *Collection[T]) indexOf(id string) int {
	return slices.IndexFunc(c.items, func(e T) bool { return e.EntityID() == id })
}
