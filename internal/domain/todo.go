package domain

import (
	"fmt"
	"strings"
)

// Todo is one item of planning work: a task to decompose, an action to
// execute, a goal (or multigoal) to achieve. The set of kinds is closed;
// engine code dispatches with an exhaustive type switch and treats any
// other implementation as a hard error.
type Todo interface {
	todoItem()
	String() string
}

// Task names a compound activity to be decomposed by task methods.
type Task struct {
	Name string `json:"name"`
	Args []any  `json:"args,omitempty"`
}

// ActionCall names a primitive action to execute with concrete arguments.
type ActionCall struct {
	Name string `json:"name"`
	Args []any  `json:"args,omitempty"`
}

// Goal asks that predicate[subject] == value hold in the state.
type Goal struct {
	Predicate string `json:"predicate"`
	Subject   string `json:"subject"`
	Value     any    `json:"value"`
}

// Multigoal is a named set of goals that must all hold simultaneously.
// There is no automatic decomposition into independent single goals:
// a multigoal with no registered method fails its node.
type Multigoal struct {
	Name  string `json:"name"`
	Goals []Goal `json:"goals"`
}

func (Task) todoItem()       {}
func (ActionCall) todoItem() {}
func (Goal) todoItem()       {}
func (Multigoal) todoItem()  {}

func (t Task) String() string {
	return FormatCall(t.Name, t.Args)
}

func (a ActionCall) String() string {
	return FormatCall(a.Name, a.Args)
}

func (g Goal) String() string {
	return fmt.Sprintf("%s[%s]=%v", g.Predicate, g.Subject, g.Value)
}

func (m Multigoal) String() string {
	parts := make([]string, len(m.Goals))
	for i, g := range m.Goals {
		parts[i] = g.String()
	}
	return fmt.Sprintf("%s{%s}", m.Name, strings.Join(parts, ", "))
}

// FormatCall renders name(arg1, arg2, ...). The rendering is canonical:
// it doubles as the blacklist key for an action-argument pair.
func FormatCall(name string, args []any) string {
	if len(args) == 0 {
		return name + "()"
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
}
