package optimistic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_BeginCommit(t *testing.T) {
	r := NewRegistry[int]()

	token := r.Begin("task-1", 42)
	require.NotEmpty(t, token)

	value, ok := r.Pending("task-1")
	require.True(t, ok)
	assert.Equal(t, 42, value)
	assert.True(t, r.IsPending("task-1"))

	assert.True(t, r.CommitIfCurrent("task-1", token))
	assert.False(t, r.IsPending("task-1"))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_TokensUnique(t *testing.T) {
	r := NewRegistry[int]()

	a := r.Begin("task-1", 1)
	b := r.Begin("task-1", 2)
	assert.NotEqual(t, a, b)
}

func TestRegistry_SupersededCommitIsNoop(t *testing.T) {
	r := NewRegistry[int]()

	first := r.Begin("task-1", 1)
	second := r.Begin("task-1", 2)

	// The slow first operation resolving late must not retire the newer one.
	assert.False(t, r.CommitIfCurrent("task-1", first))

	value, ok := r.Pending("task-1")
	require.True(t, ok)
	assert.Equal(t, 2, value)

	assert.True(t, r.CommitIfCurrent("task-1", second))
	assert.False(t, r.IsPending("task-1"))
}

func TestRegistry_SupersededRollbackIsNoop(t *testing.T) {
	r := NewRegistry[int]()

	first := r.Begin("task-1", 1)
	r.Begin("task-1", 2)

	assert.False(t, r.RollbackIfCurrent("task-1", first))
	assert.True(t, r.IsPending("task-1"))
}

func TestRegistry_RollbackCurrent(t *testing.T) {
	r := NewRegistry[int]()

	token := r.Begin("task-1", 1)
	assert.True(t, r.RollbackIfCurrent("task-1", token))
	assert.False(t, r.IsPending("task-1"))
}

func TestRegistry_IndependentEntities(t *testing.T) {
	r := NewRegistry[int]()

	a := r.Begin("task-a", 1)
	b := r.Begin("task-b", 2)

	assert.True(t, r.CommitIfCurrent("task-a", a))
	assert.True(t, r.IsPending("task-b"))
	assert.True(t, r.CommitIfCurrent("task-b", b))
}

func TestRegistry_Rekey(t *testing.T) {
	r := NewRegistry[int]()

	token := r.Begin("temp-1", 7)
	require.True(t, r.Rekey("temp-1", "real-1"))

	assert.False(t, r.IsPending("temp-1"))
	value, ok := r.Pending("real-1")
	require.True(t, ok)
	assert.Equal(t, 7, value)

	// Token ownership follows the entity across the rekey.
	assert.True(t, r.CommitIfCurrent("real-1", token))
	assert.False(t, r.Rekey("temp-1", "real-1"))
}
