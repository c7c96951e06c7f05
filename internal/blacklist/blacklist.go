// Package blacklist records primitive actions that failed with specific
// arguments, so the refinement engine never retries a known-futile
// attempt. Entries never silently expire within a session; lifetime is
// governed entirely by scope.
package blacklist

import (
	"sort"
	"sync"
	"time"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/types"
)

// Scope determines how long a blacklist entry lives.
type Scope string

const (
	// ScopeSession entries persist for the whole planning attempt.
	ScopeSession Scope = "session"

	// ScopeSubtree entries are cleared when backtracking exits the
	// subtree that created them.
	ScopeSubtree Scope = "subtree"

	// ScopeGlobal entries persist across planning attempts, for
	// actions known to be permanently invalid.
	ScopeGlobal Scope = "global"
)

// String returns the string representation of the scope.
func (s Scope) String() string {
	return string(s)
}

// IsValid checks if the Scope is a valid value.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeSession, ScopeSubtree, ScopeGlobal:
		return true
	default:
		return false
	}
}

// Entry is one blacklisted action-argument pair. Key is the canonical
// "name(arg, ...)" rendering of the call.
type Entry struct {
	Key          string    `json:"key"`
	Scope        Scope     `json:"scope"`
	FailureCount int       `json:"failure_count"`
	CreatedAt    time.Time `json:"created_at"`

	// OriginNode is the solution-tree node whose failure created the
	// entry. Subtree-scoped entries are cleared when backtracking
	// discards that node's subtree.
	OriginNode types.ID `json:"origin_node,omitempty"`
}

// Blacklist holds the entries of one planning session. A session's
// blacklist is single-writer (the refinement loop), but reads are
// guarded so a shared Global store can serve concurrent sessions.
type Blacklist struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// New creates an empty blacklist.
func New() *Blacklist {
	return &Blacklist{entries: make(map[string]*Entry)}
}

// Record creates an entry for key, or bumps its failure count if one
// exists. The first failure fixes the entry's scope and origin.
func (b *Blacklist) Record(key string, scope Scope, origin types.ID) *Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.entries[key]; ok {
		e.FailureCount++
		return e
	}
	e := &Entry{
		Key:          key,
		Scope:        scope,
		FailureCount: 1,
		CreatedAt:    time.Now(),
		OriginNode:   origin,
	}
	b.entries[key] = e
	return e
}

// Contains reports whether key is blacklisted.
func (b *Blacklist) Contains(key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.entries[key]
	return ok
}

// Lookup returns a copy of the entry for key.
func (b *Blacklist) Lookup(key string) (Entry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.entries[key]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// ClearSubtree removes subtree-scoped entries whose origin node is in
// the discarded set, returning how many were cleared. Session and
// Global entries are untouched.
func (b *Blacklist) ClearSubtree(discarded map[types.ID]bool) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	cleared := 0
	for key, e := range b.entries {
		if e.Scope == ScopeSubtree && discarded[e.OriginNode] {
			delete(b.entries, key)
			cleared++
		}
	}
	return cleared
}

// AdoptGlobals copies Global-scoped entries from another blacklist,
// typically the engine's cross-attempt store, into this one.
func (b *Blacklist) AdoptGlobals(from *Blacklist) {
	if from == nil {
		return
	}
	from.mu.RLock()
	defer from.mu.RUnlock()
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, e := range from.entries {
		if e.Scope != ScopeGlobal {
			continue
		}
		if _, exists := b.entries[key]; !exists {
			copied := *e
			b.entries[key] = &copied
		}
	}
}

// PublishGlobals copies this blacklist's Global-scoped entries into the
// destination store so later planning attempts observe them.
func (b *Blacklist) PublishGlobals(to *Blacklist) {
	if to == nil {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	to.mu.Lock()
	defer to.mu.Unlock()

	for key, e := range b.entries {
		if e.Scope != ScopeGlobal {
			continue
		}
		if existing, exists := to.entries[key]; exists {
			// Keep the larger count; repeated publishes of the same
			// session must not inflate it.
			if e.FailureCount > existing.FailureCount {
				existing.FailureCount = e.FailureCount
			}
			continue
		}
		copied := *e
		to.entries[key] = &copied
	}
}

// Entries returns copies of all entries, sorted by key.
func (b *Blacklist) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Entry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Len returns the number of entries.
func (b *Blacklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
