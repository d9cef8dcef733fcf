package listview

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/simp-lee/svcadmin/internal/domain"
)

// RemoteUpdate performs a mutation against the data source. It may return the
// server-confirmed entity, or nil when the call returns nothing.
type RemoteUpdate[T any] func(ctx context.Context) (*T, error)

// RemoteDelete performs a deletion against the data source.
type RemoteDelete func(ctx context.Context) error

// Mutate applies patch to the held entity immediately, then runs remote.
//
// On success the patched entity is kept, or replaced by the entity remote
// returns. On failure the entity is restored to its previous state and a
// MutationFailure wrapping the remote error is returned. A patch error is
// returned as-is and nothing changes. A second mutation on an id with a
// pending action is rejected with CodeBusy.
func (c *Controller[T, K]) Mutate(ctx context.Context, id K, op string, patch func(T) (T, error), remote RemoteUpdate[T]) error {
	c.mu.Lock()
	pa, err := c.beginLocked(id, op)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	next, err := patch(pa.Previous)
	if err != nil {
		delete(c.pending, id)
		c.err = err
		c.notifyLocked(EventMutationSettled)
		c.mu.Unlock()
		return err
	}
	pa.patch = patch
	c.items[pa.Index] = next
	c.notifyLocked(EventMutationStarted)
	c.mu.Unlock()

	confirmed, remoteErr := remote(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)

	if remoteErr != nil {
		if pa.gen == c.gen {
			if i := c.indexLocked(id); i >= 0 {
				c.items[i] = pa.Previous
			}
		}
		return c.failLocked(pa, remoteErr)
	}

	if i := c.indexLocked(id); i >= 0 {
		switch {
		case confirmed != nil:
			c.items[i] = *confirmed
		case pa.gen != c.gen:
			// A fetch replaced the collection while the call was in flight.
			if repatched, err := pa.patch(c.items[i]); err == nil {
				c.items[i] = repatched
			}
		}
	}
	c.notifyLocked(EventMutationSettled)
	c.log.Debug("mutation applied", slog.String("op", op), slog.Any("id", id))
	return nil
}

// Remove drops the held entity immediately, then runs remote. On failure the
// entity is reinserted in front of the first entity that followed it and is
// still held, so removals of other ids settling meanwhile do not shift it.
func (c *Controller[T, K]) Remove(ctx context.Context, id K, op string, remote RemoteDelete) error {
	c.mu.Lock()
	pa, err := c.beginLocked(id, op)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	pa.Removed = true
	pa.followers = make([]K, 0, len(c.items)-pa.Index-1)
	for _, it := range c.items[pa.Index+1:] {
		pa.followers = append(pa.followers, c.rules.ID(it))
	}
	c.items = slices.Delete(c.items, pa.Index, pa.Index+1)
	c.notifyLocked(EventMutationStarted)
	c.mu.Unlock()

	remoteErr := remote(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)

	if remoteErr != nil {
		if pa.gen == c.gen && c.indexLocked(id) < 0 {
			c.items = slices.Insert(c.items, c.reinsertIndexLocked(pa), pa.Previous)
		}
		return c.failLocked(pa, remoteErr)
	}

	if c.rules.Paging == PagingServer && pa.gen == c.gen {
		c.totalCount = max(c.totalCount-1, 0)
		c.totalPages = PageCount(c.totalCount, c.query.PageSize)
	}
	c.notifyLocked(EventMutationSettled)
	c.log.Debug("entity removed", slog.String("op", op), slog.Any("id", id))
	return nil
}

// reinsertIndexLocked is the position in front of the first follower of a
// removed entity that is still held, or the end of the collection.
func (c *Controller[T, K]) reinsertIndexLocked(pa *PendingAction[T, K]) int {
	for _, next := range pa.followers {
		if i := c.indexLocked(next); i >= 0 {
			return i
		}
	}
	return len(c.items)
}

// Pending reports whether id has a mutation in flight.
func (c *Controller[T, K]) Pending(id K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[id]
	return ok
}

// beginLocked registers a PendingAction for id, or explains why it cannot.
func (c *Controller[T, K]) beginLocked(id K, op string) (*PendingAction[T, K], error) {
	if c.closed {
		return nil, ErrClosed
	}
	if _, busy := c.pending[id]; busy {
		err := domain.NewAppError(domain.CodeBusy, fmt.Sprintf("%s rejected: %v has a pending change", op, id), nil)
		c.err = err
		c.notifyLocked(EventMutationSettled)
		return nil, err
	}
	i := c.indexLocked(id)
	if i < 0 {
		return nil, domain.NewAppError(domain.CodeNotFound, fmt.Sprintf("%v is not in the list", id), nil)
	}

	pa := &PendingAction[T, K]{
		ID:        id,
		Operation: op,
		Previous:  c.items[i],
		Index:     i,
		gen:       c.gen,
	}
	c.pending[id] = pa
	return pa, nil
}

func (c *Controller[T, K]) failLocked(pa *PendingAction[T, K], cause error) error {
	err := domain.NewAppError(domain.CodeMutationFailed, fmt.Sprintf("%s %v failed", pa.Operation, pa.ID), cause)
	c.err = err
	c.notifyLocked(EventRolledBack)
	c.log.Warn("mutation rolled back",
		slog.String("op", pa.Operation),
		slog.Any("id", pa.ID),
		slog.Any("error", cause),
	)
	return err
}
