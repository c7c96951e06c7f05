// Package engine implements the lazy refinement engine: a single
// control loop that interleaves hierarchical decomposition with
// execution. The loop repeatedly selects the next open solution-tree
// node, consults the domain registry for applicable methods or actions,
// consults the temporal network for feasibility, executes or
// decomposes, and backtracks through the tree on failure.
//
// Decomposition and execution are deliberately not split into separate
// phases: primitive actions run as soon as they are selected, so
// failures surface early and trigger blacklist-guided backtracking
// instead of invalidating a fully elaborated plan.
package engine

import (
	"log/slog"
	"time"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/blacklist"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/schedule"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/soltree"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/types"
)

// Options is the per-session configuration record.
type Options struct {
	// BlacklistScopeDefault is the scope assigned to new blacklist
	// entries. Defaults to ScopeSession. Entries never expire within a
	// session regardless of scope; Subtree entries are cleared only by
	// backtracking out of their originating subtree.
	BlacklistScopeDefault blacklist.Scope

	// MaxBacktrackDepth bounds the number of backtrack operations in
	// one session; 0 means unbounded. Exceeding the bound surfaces as
	// search exhaustion.
	MaxBacktrackDepth int

	// Deadline bounds the session's wall-clock duration; 0 means none.
	Deadline time.Duration

	// ParallelRelaxation sets the worker count for the temporal
	// network's triple relaxation; values <= 1 keep it serial.
	ParallelRelaxation int
}

func (o Options) withDefaults() Options {
	if o.BlacklistScopeDefault == "" {
		o.BlacklistScopeDefault = blacklist.ScopeSession
	}
	return o
}

// Engine is the planning entry point. It owns the cross-attempt global
// blacklist store and the event emitter; each Plan or RunLazy call
// creates an isolated session around them. Sessions never share mutable
// state except Global-scoped blacklist entries.
type Engine struct {
	logger  *slog.Logger
	emitter EventEmitter
	globals *blacklist.Blacklist
}

// Option is a functional option for configuring an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by all sessions.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithEventEmitter replaces the default channel-based emitter.
func WithEventEmitter(emitter EventEmitter) Option {
	return func(e *Engine) {
		if emitter != nil {
			e.emitter = emitter
		}
	}
}

// New creates an Engine with an empty global blacklist store.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:  slog.Default(),
		emitter: NewChannelEventEmitter(),
		globals: blacklist.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Events returns the engine's event emitter for subscription.
func (e *Engine) Events() EventEmitter {
	return e.emitter
}

// GlobalBlacklist returns the cross-attempt blacklist store. Entries
// recorded with ScopeGlobal during any session are published here.
func (e *Engine) GlobalBlacklist() *blacklist.Blacklist {
	return e.globals
}

// Close shuts down the engine's event emitter.
func (e *Engine) Close() error {
	return e.emitter.Close()
}

// GetSchedule computes the critical-path-annotated schedule of the
// tree's committed primitive actions: earliest/latest start and finish
// plus slack per action, and the overall makespan. Pure read; the tree
// is not modified.
func GetSchedule(tree *soltree.Tree) (*schedule.Schedule, error) {
	if tree == nil {
		return schedule.Compute(nil)
	}
	var activities []schedule.Activity
	for _, n := range tree.ClosedActions() {
		if n.Temporal == nil {
			return nil, types.NewErrorf(types.INVALID_TODO_ITEM,
				"closed action node %s has no temporal context", n.ID)
		}
		activities = append(activities, n.Temporal.Activity)
	}
	return schedule.Compute(activities)
}
