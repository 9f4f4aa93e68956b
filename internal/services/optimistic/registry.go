// Package optimistic tracks in-flight optimistic mutations per entity.
//
// Each user-visible mutation registers its locally-applied value under the
// entity's id and receives an operation token. When the backing network call
// resolves, the caller commits or rolls back only if its token is still the
// current one for that entity; a newer mutation on the same entity silently
// supersedes older ones regardless of which network call finishes first.
package optimistic

import (
	"sync"

	"github.com/google/uuid"
)

// Registry holds at most one pending operation per entity id.
type Registry[T any] struct {
	mu  sync.Mutex
	ops map[string]entry[T]
}

type entry[T any] struct {
	token string
	value T
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		ops: make(map[string]entry[T]),
	}
}

// Begin records value as the pending optimistic state for entityID and
// returns the operation token. Any prior pending operation for the same
// entity is superseded. Callers must apply value to visible state before
// starting the network call.
func (r *Registry[T]) Begin(entityID string, value T) string {
	token := entityID + "-" + uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[entityID] = entry[T]{token: token, value: value}
	return token
}

// CommitIfCurrent retires the pending operation for entityID if token still
// owns it. Returns false when the operation was superseded, in which case
// nothing changes.
func (r *Registry[T]) CommitIfCurrent(entityID, token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.ops[entityID]
	if !ok || e.token != token {
		return false
	}
	delete(r.ops, entityID)
	return true
}

// RollbackIfCurrent retires the pending operation for entityID if token
// still owns it. Returns true when the caller owns the rollback and should
// restore its prior snapshot and surface the error; false when superseded,
// in which case the newer operation is responsible for its own outcome.
func (r *Registry[T]) RollbackIfCurrent(entityID, token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.ops[entityID]
	if !ok || e.token != token {
		return false
	}
	delete(r.ops, entityID)
	return true
}

// Pending returns the pending optimistic value for entityID, if any.
func (r *Registry[T]) Pending(entityID string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.ops[entityID]
	return e.value, ok
}

// IsPending reports whether entityID has a pending operation.
func (r *Registry[T]) IsPending(entityID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.ops[entityID]
	return ok
}

// Rekey moves a pending operation from one entity id to another. Used by
// create flows that show a placeholder row under a locally generated id and
// swap in the server-issued id once the create succeeds. Returns false when
// no operation is pending under oldID.
func (r *Registry[T]) Rekey(oldID, newID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.ops[oldID]
	if !ok {
		return false
	}
	delete(r.ops, oldID)
	r.ops[newID] = e
	return true
}

// Len returns the number of pending operations.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ops)
}
