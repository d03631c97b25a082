// internal/store/container.go
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Events receives entity-changed notifications after a successful
// mutation; the websocket hub implements it.
type Events interface {
	EntityChanged(entity string)
}

// Container is the single writable in-memory copy of one entity
// collection: the last-fetched items, a loading flag and an error slot.
// Consistency is invalidate-and-refetch: every mutation calls the
// service and then reloads the whole collection; nothing is patched in
// place and nothing is applied optimistically, so there is no rollback.
//
// Overlapping FetchAll calls are allowed and race: the list call runs
// outside the lock and whichever response lands last overwrites the
// collection. There is no generation check and no cancellation of
// in-flight requests.
type Container[T any] struct {
	name   string
	list   func(context.Context) ([]T, error)
	events Events
	logger *zap.Logger

	mu      sync.Mutex
	items   []T
	loading bool
	errMsg  string
}

// Snapshot is a point-in-time read of a container.
type Snapshot[T any] struct {
	Items   []T
	Loading bool
	Err     string
}

func NewContainer[T any](name string, list func(context.Context) ([]T, error), events Events, logger *zap.Logger) *Container[T] {
	return &Container[T]{
		name:   name,
		list:   list,
		events: events,
		logger: logger,
	}
}

// FetchAll reloads the collection. On failure the error slot gets a
// human-readable message and the held collection stays untouched.
func (c *Container[T]) FetchAll(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	items, err := c.list(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.errMsg = HumanMessage(err)
		c.logger.Warn("fetch failed",
			zap.String("container", c.name),
			zap.Error(err),
		)
		return
	}
	c.items = items
	c.errMsg = ""
}

// Mutate runs a service mutation and, when it succeeds, re-fetches the
// whole collection and publishes an entity-changed event. The mutation
// error is returned to the caller so direct user actions can surface it
// themselves; it is also stored in the error slot.
func (c *Container[T]) Mutate(ctx context.Context, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		c.mu.Lock()
		c.errMsg = HumanMessage(err)
		c.mu.Unlock()
		return err
	}

	c.FetchAll(ctx)
	if c.events != nil {
		c.events.EntityChanged(c.name)
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Container[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{
		Items:   items,
		Loading: c.loading,
		Err:     c.errMsg,
	}
}

// Reset discards the held collection and error state.
func (c *Container[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.loading = false
	c.errMsg = ""
}
