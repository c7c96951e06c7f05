// Package soltree implements the solution tree: the evolving search
// state of a planning session. Nodes represent pending or decided work
// items (tasks, actions, goals, multigoals, and their verification
// twins); the refinement engine is the tree's single writer.
//
// Nodes are never pruned mid-search. Backtracking detaches a subtree
// from its parent and marks it discarded, but the nodes stay in the
// tree so earlier decisions remain inspectable.
package soltree

import (
	"encoding/json"
	"fmt"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/domain"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/schedule"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/stn"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/types"
)

// Kind identifies what a node represents. The set is closed; engine
// dispatch is an exhaustive switch over these values.
type Kind string

const (
	// KindRoot is the structural root holding the caller's todo list.
	KindRoot Kind = "root"

	KindTask            Kind = "task"
	KindAction          Kind = "action"
	KindGoal            Kind = "goal"
	KindMultigoal       Kind = "multigoal"
	KindVerifyGoal      Kind = "verify_goal"
	KindVerifyMultigoal Kind = "verify_multigoal"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is a valid value.
func (k Kind) IsValid() bool {
	switch k {
	case KindRoot, KindTask, KindAction, KindGoal, KindMultigoal, KindVerifyGoal, KindVerifyMultigoal:
		return true
	default:
		return false
	}
}

// Status is a node's search status.
type Status string

const (
	// StatusOpen means the node still needs to be resolved.
	StatusOpen Status = "open"

	// StatusClosed means the node succeeded and its effects are
	// committed (durably, unless an ancestor's branch is later
	// discarded by backtracking).
	StatusClosed Status = "closed"

	// StatusFailed means the node failed or its branch was discarded;
	// its effects must never appear in the final state.
	StatusFailed Status = "failed"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// TemporalContext ties an action node to its footprint in the temporal
// network and carries the derived scheduling activity, so a schedule
// can be computed from the tree alone.
type TemporalContext struct {
	Start    stn.TimePoint     `json:"start"`
	End      stn.TimePoint     `json:"end"`
	Activity schedule.Activity `json:"activity"`
}

// Node is one item in the solution tree.
type Node struct {
	ID       types.ID    `json:"id"`
	Kind     Kind        `json:"kind"`
	Payload  domain.Todo `json:"payload,omitempty"`
	Status   Status      `json:"status"`
	Parent   types.ID    `json:"parent,omitempty"`
	Children []types.ID  `json:"children,omitempty"`

	// TriedAlternatives records method names already attempted for this
	// node, in attempt order. It survives backtracking so no method is
	// retried.
	TriedAlternatives []string `json:"tried_alternatives,omitempty"`

	// Temporal is set on action nodes once they are scheduled.
	Temporal *TemporalContext `json:"temporal,omitempty"`

	// FailureReason records why the node failed, for failure traces.
	FailureReason string `json:"failure_reason,omitempty"`
}

// Tried reports whether the named method was already attempted.
func (n *Node) Tried(method string) bool {
	for _, m := range n.TriedAlternatives {
		if m == method {
			return true
		}
	}
	return false
}

// Label renders the node's payload for logs and traces.
func (n *Node) Label() string {
	if n.Payload == nil {
		return string(n.Kind)
	}
	return n.Payload.String()
}

// Tree is the search tree. Single-writer: only the refinement loop
// mutates it.
type Tree struct {
	root  types.ID
	nodes map[types.ID]*Node
	order []types.ID
}

// New creates a tree containing only the structural root.
func New() *Tree {
	root := &Node{
		ID:     types.NewID(),
		Kind:   KindRoot,
		Status: StatusOpen,
	}
	return &Tree{
		root:  root.ID,
		nodes: map[types.ID]*Node{root.ID: root},
		order: []types.ID{root.ID},
	}
}

// Root returns the structural root node.
func (t *Tree) Root() *Node {
	return t.nodes[t.root]
}

// Node returns the node with the given ID.
func (t *Tree) Node(id types.ID) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Len returns the number of nodes ever created, including discarded ones.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Expand attaches new Open children under parent, one per payload, in
// order. The parent must exist and be Open.
func (t *Tree) Expand(parent types.ID, children []*Node) error {
	p, ok := t.nodes[parent]
	if !ok {
		return fmt.Errorf("expand: unknown parent node %s", parent)
	}
	if p.Status != StatusOpen {
		return fmt.Errorf("expand: parent node %s is %s, not open", parent, p.Status)
	}
	for _, c := range children {
		if c.ID.IsZero() {
			c.ID = types.NewID()
		}
		if !c.Kind.IsValid() || c.Kind == KindRoot {
			return fmt.Errorf("expand: child has invalid kind %q", c.Kind)
		}
		c.Status = StatusOpen
		c.Parent = parent
		t.nodes[c.ID] = c
		t.order = append(t.order, c.ID)
		p.Children = append(p.Children, c.ID)
	}
	return nil
}

// MarkClosed transitions an Open node to Closed.
func (t *Tree) MarkClosed(id types.ID) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("mark closed: unknown node %s", id)
	}
	if n.Status != StatusOpen {
		return fmt.Errorf("mark closed: node %s is %s, not open", id, n.Status)
	}
	n.Status = StatusClosed
	return nil
}

// MarkFailed transitions an Open node to Failed with a reason.
func (t *Tree) MarkFailed(id types.ID, reason string) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("mark failed: unknown node %s", id)
	}
	if n.Status != StatusOpen {
		return fmt.Errorf("mark failed: node %s is %s, not open", id, n.Status)
	}
	n.Status = StatusFailed
	n.FailureReason = reason
	return nil
}

// Ancestors returns the chain of ancestor IDs from id's parent up to
// and including the root.
func (t *Tree) Ancestors(id types.ID) []types.ID {
	var out []types.ID
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	for !n.Parent.IsZero() {
		out = append(out, n.Parent)
		n = t.nodes[n.Parent]
	}
	return out
}

// Subtree returns the IDs of id and all its descendants, preorder.
// Traversal uses an explicit stack so deep trees cannot exhaust the
// call stack.
func (t *Tree) Subtree(id types.ID) []types.ID {
	if _, ok := t.nodes[id]; !ok {
		return nil
	}
	var out []types.ID
	stack := []types.ID{id}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, current)
		n := t.nodes[current]
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return out
}

// DetachChildren detaches parent's current children for re-expansion,
// marking every non-Failed node in those subtrees Failed with the given
// reason. The detached nodes stay in the tree. Returns the IDs of all
// discarded nodes.
func (t *Tree) DetachChildren(parent types.ID, reason string) []types.ID {
	p, ok := t.nodes[parent]
	if !ok {
		return nil
	}
	var discarded []types.ID
	for _, child := range p.Children {
		for _, id := range t.Subtree(child) {
			n := t.nodes[id]
			if n.Status != StatusFailed {
				n.Status = StatusFailed
				n.FailureReason = reason
			}
			discarded = append(discarded, id)
		}
	}
	p.Children = nil
	return discarded
}

// AllChildrenClosed reports whether the node has children and every one
// of them is Closed.
func (t *Tree) AllChildrenClosed(id types.ID) bool {
	n, ok := t.nodes[id]
	if !ok || len(n.Children) == 0 {
		return false
	}
	for _, c := range n.Children {
		if t.nodes[c].Status != StatusClosed {
			return false
		}
	}
	return true
}

// Walk visits every node ever created, in creation order.
func (t *Tree) Walk(fn func(n *Node) bool) {
	for _, id := range t.order {
		if !fn(t.nodes[id]) {
			return
		}
	}
}

// ClosedActions returns the Closed, attached action nodes reachable
// from the root, in creation order. Discarded branches are excluded.
func (t *Tree) ClosedActions() []*Node {
	attached := make(map[types.ID]bool, len(t.nodes))
	for _, id := range t.Subtree(t.root) {
		attached[id] = true
	}
	var out []*Node
	for _, id := range t.order {
		n := t.nodes[id]
		if attached[id] && n.Kind == KindAction && n.Status == StatusClosed {
			out = append(out, n)
		}
	}
	return out
}

// MarshalJSON serializes the attached tree, preorder.
func (t *Tree) MarshalJSON() ([]byte, error) {
	ids := t.Subtree(t.root)
	nodes := make([]*Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, t.nodes[id])
	}
	return json.Marshal(struct {
		Root  types.ID `json:"root"`
		Nodes []*Node  `json:"nodes"`
	}{Root: t.root, Nodes: nodes})
}
