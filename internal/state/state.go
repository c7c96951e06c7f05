// Package state implements the world state that planning operates on.
//
// A state is a collection of state variables addressed by predicate and
// subject, e.g. loc["box"] = "dock". Actions receive a state, produce a
// new one, and the refinement engine commits or discards the result
// depending on whether the owning solution-tree node closes or fails.
package state

import (
	"fmt"
	"reflect"
	"sort"
)

// Reserved predicates used by the engine's entity requirement checks.
// Domains that use entity requirements populate these for each entity.
const (
	PredEntityType   = "type"
	PredCapabilities = "capabilities"
	PredAvailable    = "available"
)

// State holds the values of all state variables at one point in a
// planning session. States are not safe for concurrent mutation; the
// refinement loop owns its state exclusively and hands copies to
// actions and methods.
type State struct {
	name string
	vars map[string]map[string]any
}

// New creates an empty state with a display name.
func New(name string) *State {
	return &State{
		name: name,
		vars: make(map[string]map[string]any),
	}
}

// Name returns the display name given at construction.
func (s *State) Name() string {
	return s.name
}

// Get returns the value of predicate[subject] and whether it is set.
func (s *State) Get(predicate, subject string) (any, bool) {
	subjects, ok := s.vars[predicate]
	if !ok {
		return nil, false
	}
	v, ok := subjects[subject]
	return v, ok
}

// Set assigns predicate[subject] = value.
func (s *State) Set(predicate, subject string, value any) {
	subjects, ok := s.vars[predicate]
	if !ok {
		subjects = make(map[string]any)
		s.vars[predicate] = subjects
	}
	subjects[subject] = value
}

// Delete removes predicate[subject] if present.
func (s *State) Delete(predicate, subject string) {
	if subjects, ok := s.vars[predicate]; ok {
		delete(subjects, subject)
	}
}

// Matches reports whether predicate[subject] is set and equal to value.
// Slice and map values are compared structurally.
func (s *State) Matches(predicate, subject string, value any) bool {
	current, ok := s.Get(predicate, subject)
	if !ok {
		return false
	}
	return reflect.DeepEqual(current, value)
}

// Subjects returns the subjects that have a value for predicate, sorted
// for deterministic iteration.
func (s *State) Subjects(predicate string) []string {
	subjects := s.vars[predicate]
	out := make([]string, 0, len(subjects))
	for subject := range subjects {
		out = append(out, subject)
	}
	sort.Strings(out)
	return out
}

// Predicates returns every predicate with at least one subject, sorted
// for deterministic iteration.
func (s *State) Predicates() []string {
	out := make([]string, 0, len(s.vars))
	for predicate := range s.vars {
		out = append(out, predicate)
	}
	sort.Strings(out)
	return out
}

// Copy returns a deep copy of the state. Values are copied one level
// deep; slice values are cloned so capability lists do not alias.
func (s *State) Copy() *State {
	c := New(s.name)
	for predicate, subjects := range s.vars {
		dst := make(map[string]any, len(subjects))
		for subject, v := range subjects {
			dst[subject] = copyValue(v)
		}
		c.vars[predicate] = dst
	}
	return c
}

func copyValue(v any) any {
	switch val := v.(type) {
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = copyValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = copyValue(e)
		}
		return out
	default:
		return v
	}
}

// HasCapability reports whether the entity's capability list includes cap.
func (s *State) HasCapability(entity, cap string) bool {
	v, ok := s.Get(PredCapabilities, entity)
	if !ok {
		return false
	}
	caps, ok := v.([]string)
	if !ok {
		return false
	}
	for _, c := range caps {
		if c == cap {
			return true
		}
	}
	return false
}

// FindAvailableEntity returns the first entity (in sorted subject order)
// whose type predicate equals typ, whose capability list includes every
// capability in caps, and which is marked available. The second return
// is false when no entity qualifies.
func (s *State) FindAvailableEntity(typ string, caps []string) (string, bool) {
	for _, entity := range s.Subjects(PredEntityType) {
		if !s.Matches(PredEntityType, entity, typ) {
			continue
		}
		if !s.Matches(PredAvailable, entity, true) {
			continue
		}
		qualified := true
		for _, cap := range caps {
			if !s.HasCapability(entity, cap) {
				qualified = false
				break
			}
		}
		if qualified {
			return entity, true
		}
	}
	return "", false
}

// String renders the state for logs and failure traces.
func (s *State) String() string {
	return fmt.Sprintf("state %q (%d predicates)", s.name, len(s.vars))
}
