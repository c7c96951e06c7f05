package domain

import (
	"errors"
	"fmt"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/types"
)

// Builder provides a fluent API for constructing domains. It
// accumulates registration errors and reports them all at Build time.
type Builder struct {
	domain *Domain
	errors []error
}

// NewBuilder creates a Builder for a domain with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{
		domain: &Domain{
			name:             name,
			actions:          make(map[string]Action),
			commands:         make(map[string]CommandFunc),
			taskMethods:      make(map[string][]TaskMethod),
			unigoalMethods:   make(map[string][]UnigoalMethod),
			multigoalMethods: make(map[string][]MultigoalMethod),
		},
	}
}

// RegisterAction registers a primitive action with its metadata and
// decomposition-time executable. Duplicate names are an error.
func (b *Builder) RegisterAction(name string, meta ActionMetadata, fn ActionFunc) *Builder {
	if name == "" {
		b.errors = append(b.errors, fmt.Errorf("action must have a name"))
		return b
	}
	if fn == nil {
		b.errors = append(b.errors, fmt.Errorf("action %q must have an executable", name))
		return b
	}
	if meta.Duration.Min > meta.Duration.Max {
		b.errors = append(b.errors, fmt.Errorf("action %q has inverted duration bounds [%d,%d]",
			name, meta.Duration.Min, meta.Duration.Max))
		return b
	}
	if _, exists := b.domain.actions[name]; exists {
		b.errors = append(b.errors, fmt.Errorf("action %q already registered", name))
		return b
	}
	b.domain.actions[name] = Action{Name: name, Metadata: meta, Fn: fn}
	return b
}

// RegisterCommand registers the execution-time command for an action
// name. The name shares the action namespace but registration order is
// free: a command may be registered before its action.
func (b *Builder) RegisterCommand(name string, fn CommandFunc) *Builder {
	if name == "" {
		b.errors = append(b.errors, fmt.Errorf("command must have a name"))
		return b
	}
	if fn == nil {
		b.errors = append(b.errors, fmt.Errorf("command %q must have an executable", name))
		return b
	}
	if _, exists := b.domain.commands[name]; exists {
		b.errors = append(b.errors, fmt.Errorf("command %q already registered", name))
		return b
	}
	b.domain.commands[name] = fn
	return b
}

// RegisterTaskMethod appends a named method to a task's method list.
// Methods are tried in registration order. Method names must be unique
// per task so attempt records are unambiguous.
func (b *Builder) RegisterTaskMethod(taskName, methodName string, fn TaskMethodFunc) *Builder {
	if err := b.checkMethod(taskName, methodName, fn == nil, "task"); err != nil {
		b.errors = append(b.errors, err)
		return b
	}
	for _, m := range b.domain.taskMethods[taskName] {
		if m.Name == methodName {
			b.errors = append(b.errors, fmt.Errorf("task %q already has a method %q", taskName, methodName))
			return b
		}
	}
	b.domain.taskMethods[taskName] = append(b.domain.taskMethods[taskName],
		TaskMethod{Name: methodName, Fn: fn})
	return b
}

// RegisterUnigoalMethod appends a named method for a goal predicate.
func (b *Builder) RegisterUnigoalMethod(predicate, methodName string, fn UnigoalMethodFunc) *Builder {
	if err := b.checkMethod(predicate, methodName, fn == nil, "unigoal"); err != nil {
		b.errors = append(b.errors, err)
		return b
	}
	for _, m := range b.domain.unigoalMethods[predicate] {
		if m.Name == methodName {
			b.errors = append(b.errors, fmt.Errorf("predicate %q already has a method %q", predicate, methodName))
			return b
		}
	}
	b.domain.unigoalMethods[predicate] = append(b.domain.unigoalMethods[predicate],
		UnigoalMethod{Name: methodName, Fn: fn})
	return b
}

// RegisterMultigoalMethod appends a named method for a multigoal pattern.
func (b *Builder) RegisterMultigoalMethod(pattern, methodName string, fn MultigoalMethodFunc) *Builder {
	if err := b.checkMethod(pattern, methodName, fn == nil, "multigoal"); err != nil {
		b.errors = append(b.errors, err)
		return b
	}
	for _, m := range b.domain.multigoalMethods[pattern] {
		if m.Name == methodName {
			b.errors = append(b.errors, fmt.Errorf("multigoal %q already has a method %q", pattern, methodName))
			return b
		}
	}
	b.domain.multigoalMethods[pattern] = append(b.domain.multigoalMethods[pattern],
		MultigoalMethod{Name: methodName, Fn: fn})
	return b
}

func (b *Builder) checkMethod(target, methodName string, nilFn bool, family string) error {
	if target == "" {
		return fmt.Errorf("%s method %q must name its target", family, methodName)
	}
	if methodName == "" {
		return fmt.Errorf("%s method for %q must have a name", family, target)
	}
	if nilFn {
		return fmt.Errorf("%s method %q/%q must have an executable", family, target, methodName)
	}
	return nil
}

// Build returns the immutable domain, or a DOMAIN_INVALID_REGISTRATION
// error joining every accumulated registration failure.
func (b *Builder) Build() (*Domain, error) {
	if len(b.errors) > 0 {
		return nil, types.WrapError(types.DOMAIN_INVALID_REGISTRATION,
			fmt.Sprintf("domain %q has %d registration errors", b.domain.name, len(b.errors)),
			errors.Join(b.errors...))
	}
	return b.domain, nil
}
