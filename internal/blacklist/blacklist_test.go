package blacklist

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/types"
)

func TestRecordAndContains(t *testing.T) {
	b := New()
	origin := types.NewID()

	assert.False(t, b.Contains("move(dock, void)"))

	e := b.Record("move(dock, void)", ScopeSession, origin)
	assert.True(t, b.Contains("move(dock, void)"))
	assert.Equal(t, 1, e.FailureCount)
	assert.Equal(t, origin, e.OriginNode)
	assert.False(t, e.CreatedAt.IsZero())

	// Re-recording bumps the count but keeps scope and origin.
	again := b.Record("move(dock, void)", ScopeGlobal, types.NewID())
	assert.Equal(t, 2, again.FailureCount)
	assert.Equal(t, ScopeSession, again.Scope)
	assert.Equal(t, origin, again.OriginNode)
	assert.Equal(t, 1, b.Len())
}

func TestArgsDistinguishEntries(t *testing.T) {
	b := New()
	b.Record("move(dock, void)", ScopeSession, "")

	assert.True(t, b.Contains("move(dock, void)"))
	assert.False(t, b.Contains("move(dock, warehouse)"), "same action with different args is not blacklisted")
}

func TestClearSubtree(t *testing.T) {
	b := New()
	inSubtree := types.NewID()
	elsewhere := types.NewID()

	b.Record("a()", ScopeSubtree, inSubtree)
	b.Record("b()", ScopeSubtree, elsewhere)
	b.Record("c()", ScopeSession, inSubtree)
	b.Record("d()", ScopeGlobal, inSubtree)

	cleared := b.ClearSubtree(map[types.ID]bool{inSubtree: true})
	assert.Equal(t, 1, cleared)
	assert.False(t, b.Contains("a()"))
	assert.True(t, b.Contains("b()"), "subtree entry from another origin survives")
	assert.True(t, b.Contains("c()"), "session entry survives subtree exit")
	assert.True(t, b.Contains("d()"), "global entry survives subtree exit")
}

func TestGlobalTransfer(t *testing.T) {
	store := New()
	store.Record("teleport(box)", ScopeGlobal, "")
	store.Record("local()", ScopeSession, "")

	session := New()
	session.AdoptGlobals(store)
	assert.True(t, session.Contains("teleport(box)"))
	assert.False(t, session.Contains("local()"), "non-global entries are not adopted")

	session.Record("burn(box)", ScopeGlobal, "")
	session.Record("try(box)", ScopeSubtree, "")
	session.PublishGlobals(store)

	assert.True(t, store.Contains("burn(box)"))
	assert.False(t, store.Contains("try(box)"))

	// Publishing keeps the larger failure count and never inflates it
	// across repeated publishes of the same session.
	session.Record("teleport(box)", ScopeGlobal, "")
	session.PublishGlobals(store)
	session.PublishGlobals(store)
	e, ok := store.Lookup("teleport(box)")
	require.True(t, ok)
	assert.Equal(t, 2, e.FailureCount)
}

func TestEntriesSorted(t *testing.T) {
	b := New()
	b.Record("z()", ScopeSession, "")
	b.Record("a()", ScopeSession, "")
	b.Record("m()", ScopeSession, "")

	entries := b.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "a()", entries[0].Key)
	assert.Equal(t, "m()", entries[1].Key)
	assert.Equal(t, "z()", entries[2].Key)
}

func TestScopeValidity(t *testing.T) {
	assert.True(t, ScopeSession.IsValid())
	assert.True(t, ScopeSubtree.IsValid())
	assert.True(t, ScopeGlobal.IsValid())
	assert.False(t, Scope("forever").IsValid())
}

func TestConcurrentReads(t *testing.T) {
	b := New()
	b.Record("move(a, b)", ScopeGlobal, "")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.Contains("move(a, b)")
				_ = b.Entries()
			}
		}()
	}
	wg.Wait()
}
