// Package domain implements the registry a planning domain is built
// from: primitive actions with metadata, execution-time commands, and
// the three method families (task, unigoal, multigoal).
//
// The registry is pure data plus lookup. Lookups never fall back across
// categories: an unresolved action name is not retried as a task, and a
// multigoal with no registered method is a hard failure for its node.
// Domains are immutable once built; a Builder performs registration and
// reports every registration error at Build time.
package domain

import (
	"context"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/state"
)

// ActionFunc models an action during pure decomposition and validation.
// It returns the successor state, or false when the action does not
// apply. The engine checks entity requirements before invoking it, so
// the body may assume its declared preconditions hold.
type ActionFunc func(s *state.State, args []any) (*state.State, bool)

// CommandFunc is the execution-time counterpart of an action. Unlike an
// ActionFunc it may fail for real-world reasons (resource vanished,
// environment changed); the error becomes an execution failure and a
// blacklist entry.
type CommandFunc func(ctx context.Context, s *state.State, args []any) (*state.State, error)

// TaskMethodFunc decomposes a task into sub-items. It returns false
// when the method does not apply in the given state.
type TaskMethodFunc func(s *state.State, args []any) ([]Todo, bool)

// UnigoalMethodFunc decomposes a single goal into sub-items.
type UnigoalMethodFunc func(s *state.State, g Goal) ([]Todo, bool)

// MultigoalMethodFunc decomposes a multigoal into sub-items.
type MultigoalMethodFunc func(s *state.State, mg Multigoal) ([]Todo, bool)

// DurationBounds is a fixed or ranged activity duration in time units.
type DurationBounds struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// FixedDuration returns bounds with Min == Max == d.
func FixedDuration(d int64) DurationBounds {
	return DurationBounds{Min: d, Max: d}
}

// Fixed reports whether the bounds describe a single duration.
func (d DurationBounds) Fixed() bool {
	return d.Min == d.Max
}

// EntityRequirement describes an entity the action needs at selection
// time. The engine checks availability before invoking the action; the
// action body never re-checks.
type EntityRequirement struct {
	Type         string   `json:"type"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// ActionMetadata carries the scheduling-relevant facts about an action.
type ActionMetadata struct {
	Duration         DurationBounds      `json:"duration"`
	RequiresEntities []EntityRequirement `json:"requires_entities,omitempty"`

	// StartWindow, when non-nil, bounds the action's start time
	// relative to time zero. Nil means the start is only constrained
	// by ordering.
	StartWindow *DurationBounds `json:"start_window,omitempty"`

	// MinDelayAfterPredecessor is a required gap, in time units,
	// between the end of the preceding action and this action's start.
	MinDelayAfterPredecessor int64 `json:"min_delay_after_predecessor,omitempty"`
}

// Action pairs an action's metadata with its decomposition-time executable.
type Action struct {
	Name     string
	Metadata ActionMetadata
	Fn       ActionFunc
}

// TaskMethod is a named task decomposition. Names are mandatory so
// attempts can be logged and recorded against a node.
type TaskMethod struct {
	Name string
	Fn   TaskMethodFunc
}

// UnigoalMethod is a named single-goal decomposition.
type UnigoalMethod struct {
	Name string
	Fn   UnigoalMethodFunc
}

// MultigoalMethod is a named multigoal decomposition.
type MultigoalMethod struct {
	Name string
	Fn   MultigoalMethodFunc
}

// Domain is the immutable registry a planning session runs against.
// It is read-only for the duration of a session.
type Domain struct {
	name             string
	actions          map[string]Action
	commands         map[string]CommandFunc
	taskMethods      map[string][]TaskMethod
	unigoalMethods   map[string][]UnigoalMethod
	multigoalMethods map[string][]MultigoalMethod
}

// Name returns the domain's display name.
func (d *Domain) Name() string {
	return d.name
}

// ResolveAction looks up a primitive action by name. There is no
// fallback to a same-named task.
func (d *Domain) ResolveAction(name string) (Action, bool) {
	a, ok := d.actions[name]
	return a, ok
}

// ResolveCommand looks up the execution-time command registered under
// the action's name.
func (d *Domain) ResolveCommand(name string) (CommandFunc, bool) {
	c, ok := d.commands[name]
	return c, ok
}

// ResolveTaskMethods returns the registered methods for a task name, in
// registration order. Empty means no method is registered.
func (d *Domain) ResolveTaskMethods(name string) []TaskMethod {
	return d.taskMethods[name]
}

// ResolveUnigoalMethods returns the registered methods for a goal
// predicate, in registration order.
func (d *Domain) ResolveUnigoalMethods(predicate string) []UnigoalMethod {
	return d.unigoalMethods[predicate]
}

// ResolveMultigoalMethods returns the registered methods for a
// multigoal pattern, in registration order.
func (d *Domain) ResolveMultigoalMethods(pattern string) []MultigoalMethod {
	return d.multigoalMethods[pattern]
}

// ActionNames returns the registered action names, unordered.
func (d *Domain) ActionNames() []string {
	out := make([]string, 0, len(d.actions))
	for name := range d.actions {
		out = append(out, name)
	}
	return out
}
