package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/blacklist"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/domain"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/schedule"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/soltree"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/state"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/stn"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/types"
)

// frame captures everything needed to re-try a decomposition node with
// a different method: the state and temporal network as they were when
// the node was first expanded, and the action chain position.
type frame struct {
	snapshot   *state.State
	checkpoint stn.Checkpoint
	lastAction types.ID
}

// session is one planning attempt. The refinement loop is its single
// writer; the solution tree, blacklist, and temporal network are owned
// exclusively by it for the session's lifetime.
type session struct {
	id      types.ID
	eng     *Engine
	dom     *domain.Domain
	tree    *soltree.Tree
	st      *state.State
	net     *stn.Network
	bl      *blacklist.Blacklist
	opts    Options
	execute bool

	frames     map[types.ID]*frame
	lastAction types.ID
	backtracks int
	trace      Trace
	deadline   time.Time
}

// Plan runs pure decomposition: actions are simulated through their
// decomposition-time executables and no commands run. The returned
// solution tree can be inspected or fed to GetSchedule.
func (e *Engine) Plan(ctx context.Context, dom *domain.Domain, init *state.State, todos []domain.Todo, opts Options) (*soltree.Tree, error) {
	s, err := e.newSession(dom, init, todos, opts, false)
	if err != nil {
		return nil, err
	}
	if err := s.run(ctx); err != nil {
		return nil, err
	}
	return s.tree, nil
}

// RunLazy runs the interleaved planning-and-execution loop: primitive
// actions execute through their commands as soon as they are selected.
// Returns the final state after every todo item is resolved.
func (e *Engine) RunLazy(ctx context.Context, dom *domain.Domain, init *state.State, todos []domain.Todo, opts Options) (*state.State, error) {
	final, _, err := e.RunLazyWithTree(ctx, dom, init, todos, opts)
	return final, err
}

// RunLazyWithTree is RunLazy plus the session's solution tree, so
// callers can feed the executed plan to GetSchedule or inspect the
// decomposition that was taken.
func (e *Engine) RunLazyWithTree(ctx context.Context, dom *domain.Domain, init *state.State, todos []domain.Todo, opts Options) (*state.State, *soltree.Tree, error) {
	s, err := e.newSession(dom, init, todos, opts, true)
	if err != nil {
		return nil, nil, err
	}
	if err := s.run(ctx); err != nil {
		return nil, nil, err
	}
	return s.st, s.tree, nil
}

func (e *Engine) newSession(dom *domain.Domain, init *state.State, todos []domain.Todo, opts Options, execute bool) (*session, error) {
	if dom == nil {
		return nil, types.NewError(types.INVALID_TODO_ITEM, "domain must not be nil")
	}
	if init == nil {
		return nil, types.NewError(types.INVALID_TODO_ITEM, "initial state must not be nil")
	}
	opts = opts.withDefaults()
	if !opts.BlacklistScopeDefault.IsValid() {
		return nil, types.NewErrorf(types.CONFIG_VALIDATION_FAILED,
			"invalid default blacklist scope %q", opts.BlacklistScopeDefault)
	}

	// The zero value keeps the network's serial default; the stn option
	// itself treats 0 as "use GOMAXPROCS".
	var netOpts []stn.Option
	if opts.ParallelRelaxation > 0 {
		netOpts = append(netOpts, stn.WithParallelRelaxation(opts.ParallelRelaxation))
	}

	s := &session{
		id:      types.NewID(),
		eng:     e,
		dom:     dom,
		tree:    soltree.New(),
		st:      init.Copy(),
		net:     stn.New(netOpts...),
		bl:      blacklist.New(),
		opts:    opts,
		execute: execute,
		frames:  make(map[types.ID]*frame),
	}
	s.bl.AdoptGlobals(e.globals)
	if opts.Deadline > 0 {
		s.deadline = time.Now().Add(opts.Deadline)
	}

	children := make([]*soltree.Node, 0, len(todos))
	for _, todo := range todos {
		n, err := nodeFor(todo)
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	if err := s.tree.Expand(s.tree.Root().ID, children); err != nil {
		return nil, types.WrapError(types.INVALID_TODO_ITEM, "failed to seed solution tree", err)
	}
	return s, nil
}

// nodeFor maps a todo item to a fresh solution-tree node. The todo kind
// set is closed; anything else is a caller bug.
func nodeFor(todo domain.Todo) (*soltree.Node, error) {
	switch todo.(type) {
	case domain.Task:
		return &soltree.Node{Kind: soltree.KindTask, Payload: todo}, nil
	case domain.ActionCall:
		return &soltree.Node{Kind: soltree.KindAction, Payload: todo}, nil
	case domain.Goal:
		return &soltree.Node{Kind: soltree.KindGoal, Payload: todo}, nil
	case domain.Multigoal:
		return &soltree.Node{Kind: soltree.KindMultigoal, Payload: todo}, nil
	default:
		return nil, types.NewErrorf(types.INVALID_TODO_ITEM, "unsupported todo item %T", todo)
	}
}

// run is the refinement loop. One node is resolved per iteration;
// failures are handled locally by backtracking and only search
// exhaustion (or a deadline) escapes to the caller.
func (s *session) run(ctx context.Context) error {
	defer s.bl.PublishGlobals(s.eng.globals)

	for {
		if err := s.checkDeadline(ctx); err != nil {
			s.emit(ctx, EventPlanFailed, map[string]any{"error": err.Error()})
			return err
		}

		node := s.selectNext()
		if node == nil {
			root := s.tree.Root()
			if root.Status == soltree.StatusOpen {
				if err := s.tree.MarkClosed(root.ID); err != nil {
					return types.WrapError(types.INVALID_TODO_ITEM, "failed to close root", err)
				}
			}
			s.emit(ctx, EventPlanCompleted, map[string]any{
				"nodes":      s.tree.Len(),
				"backtracks": s.backtracks,
			})
			s.eng.logger.Debug("planning session completed",
				"session", s.id, "nodes", s.tree.Len(), "backtracks", s.backtracks)
			return nil
		}

		s.emit(ctx, EventNodeSelected, map[string]any{
			"node": node.ID.String(), "kind": node.Kind.String(), "label": node.Label(),
		})

		var err error
		switch node.Kind {
		case soltree.KindAction:
			err = s.resolveAction(ctx, node)
		case soltree.KindTask, soltree.KindGoal, soltree.KindMultigoal:
			err = s.decompose(ctx, node)
		case soltree.KindVerifyGoal, soltree.KindVerifyMultigoal:
			err = s.verify(ctx, node)
		default:
			return types.NewErrorf(types.INVALID_TODO_ITEM, "selected node %s has kind %q", node.ID, node.Kind)
		}
		if err != nil {
			if fatal := s.backtrack(ctx, node, err); fatal != nil {
				s.emit(ctx, EventPlanFailed, map[string]any{"error": fatal.Error()})
				return fatal
			}
		}
	}
}

func (s *session) checkDeadline(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return types.WrapError(types.PLANNING_DEADLINE_EXCEEDED, "planning context done", err)
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return types.NewErrorf(types.PLANNING_DEADLINE_EXCEEDED,
			"planning deadline of %s exceeded", s.opts.Deadline)
	}
	return nil
}

// selectNext walks down from the root to the next node to resolve.
// At each level it scans the open children in order; an unexpanded
// action child takes priority over task/goal/multigoal siblings, so an
// immediately executable action runs before further decomposition.
// Returns nil when no open work remains.
func (s *session) selectNext() *soltree.Node {
	current := s.tree.Root()
	for {
		var open []*soltree.Node
		for _, id := range current.Children {
			n, ok := s.tree.Node(id)
			if ok && n.Status == soltree.StatusOpen {
				open = append(open, n)
			}
		}
		if len(open) == 0 {
			return nil
		}

		next := open[0]
		for _, n := range open {
			if n.Kind == soltree.KindAction {
				next = n
				break
			}
		}
		if len(next.Children) == 0 {
			return next
		}
		current = next
	}
}

// resolveAction handles an action node: blacklist check, entity
// requirement check, temporal scheduling, then execution (command in
// RunLazy, decomposition-time executable in Plan). Committed effects
// replace the session state; failures mark the node Failed and return
// the local error for backtracking.
func (s *session) resolveAction(ctx context.Context, node *soltree.Node) error {
	call, ok := node.Payload.(domain.ActionCall)
	if !ok {
		return s.failNode(ctx, node, types.NewErrorf(types.INVALID_TODO_ITEM,
			"action node %s has payload %T", node.ID, node.Payload))
	}
	key := domain.FormatCall(call.Name, call.Args)

	if s.bl.Contains(key) {
		return s.failNode(ctx, node, types.NewErrorf(types.ACTION_BLACKLISTED,
			"action %s is blacklisted", key))
	}

	act, ok := s.dom.ResolveAction(call.Name)
	if !ok {
		return s.failNode(ctx, node, types.NewErrorf(types.UNKNOWN_ACTION,
			"action %q is not registered", call.Name))
	}

	for _, req := range act.Metadata.RequiresEntities {
		if _, found := s.st.FindAvailableEntity(req.Type, req.Capabilities); !found {
			// No partial execution is attempted; the pair is
			// blacklisted so no later selection retries it.
			entry := s.bl.Record(key, s.opts.BlacklistScopeDefault, node.ID)
			s.emit(ctx, EventActionBlacklisted, map[string]any{
				"action": key, "scope": entry.Scope.String(), "failures": entry.FailureCount,
			})
			return s.failNode(ctx, node, types.NewErrorf(types.ACTION_PRECONDITION_UNMET,
				"action %s requires an available %q entity with capabilities %v",
				key, req.Type, req.Capabilities))
		}
	}

	if err := s.scheduleAction(node, key, act.Metadata); err != nil {
		// Temporal inconsistency is terminal for this node; it is
		// never retried with different parameters.
		return s.failNode(ctx, node, err)
	}

	next, execErr := s.executeAction(ctx, call, act)
	if execErr != nil {
		entry := s.bl.Record(key, s.opts.BlacklistScopeDefault, node.ID)
		s.emit(ctx, EventActionBlacklisted, map[string]any{
			"action": key, "scope": entry.Scope.String(), "failures": entry.FailureCount,
		})
		return s.failNode(ctx, node, types.WrapError(types.ACTION_EXECUTION_FAILED,
			fmt.Sprintf("action %s failed", key), execErr))
	}

	s.st = next
	s.markClosedCascade(node)
	s.lastAction = node.ID
	s.emit(ctx, EventActionExecuted, map[string]any{"action": key})
	s.eng.logger.Debug("action executed", "session", s.id, "action", key)
	return nil
}

// executeAction invokes the execution-time command in RunLazy mode,
// falling back to the decomposition-time executable when the domain
// registers no command under the action's name. Plan mode always uses
// the decomposition-time executable.
func (s *session) executeAction(ctx context.Context, call domain.ActionCall, act domain.Action) (*state.State, error) {
	if s.execute {
		if cmd, ok := s.dom.ResolveCommand(call.Name); ok {
			return cmd(ctx, s.st, call.Args)
		}
	}
	next, ok := act.Fn(s.st, call.Args)
	if !ok {
		return nil, fmt.Errorf("action executable rejected state")
	}
	return next, nil
}

// scheduleAction inserts the action's temporal footprint: start and end
// points, the duration bound between them, anchoring after time zero,
// and a precedence edge from the previously executed action. Only the
// adjacent precedence edge is inserted (the transitive reduction of the
// execution order), so the network carries no redundant ordering.
func (s *session) scheduleAction(node *soltree.Node, key string, meta domain.ActionMetadata) error {
	start := s.net.AddTimePoint()
	end := s.net.AddTimePoint()
	dur := meta.Duration

	window := stn.Constraint{From: stn.Origin, To: start, Lower: 0, Upper: stn.Inf}
	if meta.StartWindow != nil {
		window.Lower = meta.StartWindow.Min
		window.Upper = meta.StartWindow.Max
	}
	constraints := []stn.Constraint{
		{From: start, To: end, Lower: dur.Min, Upper: dur.Max},
		window,
	}
	var deps []string
	if !s.lastAction.IsZero() {
		prev, ok := s.tree.Node(s.lastAction)
		if ok && prev.Temporal != nil {
			constraints = append(constraints, stn.Constraint{
				From: prev.Temporal.End, To: start,
				Lower: meta.MinDelayAfterPredecessor, Upper: stn.Inf,
			})
			deps = []string{s.lastAction.String()}
		}
	}

	if err := s.net.AddConstraints(constraints); err != nil {
		return err
	}

	node.Temporal = &soltree.TemporalContext{
		Start: start,
		End:   end,
		Activity: schedule.Activity{
			ID:        node.ID.String(),
			Name:      key,
			Duration:  dur.Min,
			DependsOn: deps,
		},
	}
	return nil
}

// decompose handles a task, goal, or multigoal node: methods are tried
// in registration order, skipping ones already attempted for this node;
// the first applicable method's decomposition becomes the node's
// children. Goals that already hold close immediately without a method.
func (s *session) decompose(ctx context.Context, node *soltree.Node) error {
	switch payload := node.Payload.(type) {
	case domain.Task:
		return s.decomposeWith(ctx, node, len(s.dom.ResolveTaskMethods(payload.Name)) == 0,
			func(apply func(name string, fn func() ([]domain.Todo, bool)) bool) {
				for _, m := range s.dom.ResolveTaskMethods(payload.Name) {
					if apply(m.Name, func() ([]domain.Todo, bool) { return m.Fn(s.st, payload.Args) }) {
						return
					}
				}
			}, nil)

	case domain.Goal:
		if s.st.Matches(payload.Predicate, payload.Subject, payload.Value) {
			s.markClosedCascade(node)
			return nil
		}
		verify := &soltree.Node{Kind: soltree.KindVerifyGoal, Payload: payload}
		return s.decomposeWith(ctx, node, len(s.dom.ResolveUnigoalMethods(payload.Predicate)) == 0,
			func(apply func(name string, fn func() ([]domain.Todo, bool)) bool) {
				for _, m := range s.dom.ResolveUnigoalMethods(payload.Predicate) {
					if apply(m.Name, func() ([]domain.Todo, bool) { return m.Fn(s.st, payload) }) {
						return
					}
				}
			}, verify)

	case domain.Multigoal:
		if s.multigoalHolds(payload) {
			s.markClosedCascade(node)
			return nil
		}
		// No registered method for a multigoal is a hard failure; the
		// engine never splits it into independent single goals.
		verify := &soltree.Node{Kind: soltree.KindVerifyMultigoal, Payload: payload}
		return s.decomposeWith(ctx, node, len(s.dom.ResolveMultigoalMethods(payload.Name)) == 0,
			func(apply func(name string, fn func() ([]domain.Todo, bool)) bool) {
				for _, m := range s.dom.ResolveMultigoalMethods(payload.Name) {
					if apply(m.Name, func() ([]domain.Todo, bool) { return m.Fn(s.st, payload) }) {
						return
					}
				}
			}, verify)

	default:
		return s.failNode(ctx, node, types.NewErrorf(types.INVALID_TODO_ITEM,
			"decomposition node %s has payload %T", node.ID, node.Payload))
	}
}

// decomposeWith drives one method family. iterate calls apply for each
// registered method in order; apply returns true once a method has been
// accepted and iteration must stop.
func (s *session) decomposeWith(ctx context.Context, node *soltree.Node, noMethods bool,
	iterate func(apply func(name string, fn func() ([]domain.Todo, bool)) bool),
	verify *soltree.Node) error {

	if noMethods {
		return s.failNode(ctx, node, types.NewErrorf(types.NO_APPLICABLE_METHOD,
			"no method registered for %s", node.Label()))
	}

	var expandErr error
	applied := false
	iterate(func(name string, fn func() ([]domain.Todo, bool)) bool {
		if node.Tried(name) {
			return false
		}
		node.TriedAlternatives = append(node.TriedAlternatives, name)
		s.trace.recordAttempt(node, name)
		s.emit(ctx, EventMethodTried, map[string]any{
			"node": node.ID.String(), "label": node.Label(), "method": name,
		})

		todos, ok := fn()
		if !ok {
			return false
		}
		applied = true
		expandErr = s.expandWith(ctx, node, name, todos, verify)
		return true
	})

	if !applied {
		return s.failNode(ctx, node, types.NewErrorf(types.NO_APPLICABLE_METHOD,
			"all methods exhausted for %s (tried %v)", node.Label(), node.TriedAlternatives))
	}
	return expandErr
}

// expandWith attaches the decomposition's children. The node's frame is
// captured on first expansion so backtracking can restore the state,
// temporal network, and action chain as they were at node entry.
func (s *session) expandWith(ctx context.Context, node *soltree.Node, method string, todos []domain.Todo, verify *soltree.Node) error {
	if _, ok := s.frames[node.ID]; !ok {
		s.frames[node.ID] = &frame{
			snapshot:   s.st.Copy(),
			checkpoint: s.net.Checkpoint(),
			lastAction: s.lastAction,
		}
	}

	children := make([]*soltree.Node, 0, len(todos)+1)
	for _, todo := range todos {
		child, err := nodeFor(todo)
		if err != nil {
			return s.failNode(ctx, node, err)
		}
		children = append(children, child)
	}
	if verify != nil {
		children = append(children, verify)
	}

	if err := s.tree.Expand(node.ID, children); err != nil {
		return s.failNode(ctx, node, types.WrapError(types.INVALID_TODO_ITEM,
			"failed to expand node", err))
	}

	s.emit(ctx, EventNodeExpanded, map[string]any{
		"node": node.ID.String(), "label": node.Label(), "method": method, "children": len(children),
	})

	if len(children) == 0 {
		// Empty decomposition: the task is already accomplished.
		s.markClosedCascade(node)
	}
	return nil
}

// verify confirms that a goal (or multigoal) actually holds after its
// method's children closed, guarding against methods that claim success
// without establishing the goal.
func (s *session) verify(ctx context.Context, node *soltree.Node) error {
	switch payload := node.Payload.(type) {
	case domain.Goal:
		if s.st.Matches(payload.Predicate, payload.Subject, payload.Value) {
			s.markClosedCascade(node)
			return nil
		}
		s.emit(ctx, EventVerifyFailed, map[string]any{"goal": payload.String()})
		return s.failNode(ctx, node, types.NewErrorf(types.GOAL_NOT_ESTABLISHED,
			"method completed but goal %s does not hold", payload))
	case domain.Multigoal:
		if s.multigoalHolds(payload) {
			s.markClosedCascade(node)
			return nil
		}
		s.emit(ctx, EventVerifyFailed, map[string]any{"multigoal": payload.String()})
		return s.failNode(ctx, node, types.NewErrorf(types.GOAL_NOT_ESTABLISHED,
			"method completed but multigoal %s does not hold", payload))
	default:
		return s.failNode(ctx, node, types.NewErrorf(types.INVALID_TODO_ITEM,
			"verify node %s has payload %T", node.ID, node.Payload))
	}
}

func (s *session) multigoalHolds(mg domain.Multigoal) bool {
	for _, g := range mg.Goals {
		if !s.st.Matches(g.Predicate, g.Subject, g.Value) {
			return false
		}
	}
	return true
}

// failNode marks the node Failed and returns err for the caller to
// route into backtracking.
func (s *session) failNode(ctx context.Context, node *soltree.Node, err error) error {
	if markErr := s.tree.MarkFailed(node.ID, err.Error()); markErr != nil {
		s.eng.logger.Warn("failed to mark node", "session", s.id, "node", node.ID, "error", markErr)
	}
	s.emit(ctx, EventNodeFailed, map[string]any{
		"node": node.ID.String(), "label": node.Label(), "error": err.Error(),
	})
	s.eng.logger.Debug("node failed", "session", s.id, "node", node.Label(), "error", err)
	return err
}

// markClosedCascade closes the node, then closes every ancestor whose
// children have all closed. The walk is iterative; the tree can be
// arbitrarily deep.
func (s *session) markClosedCascade(node *soltree.Node) {
	if err := s.tree.MarkClosed(node.ID); err != nil {
		s.eng.logger.Warn("failed to close node", "session", s.id, "node", node.ID, "error", err)
		return
	}
	for parent := node.Parent; !parent.IsZero(); {
		p, ok := s.tree.Node(parent)
		if !ok || p.Status != soltree.StatusOpen || p.Kind == soltree.KindRoot {
			return
		}
		if !s.tree.AllChildrenClosed(p.ID) {
			return
		}
		if err := s.tree.MarkClosed(p.ID); err != nil {
			return
		}
		parent = p.Parent
	}
}

// backtrack walks the failed node's ancestors for the nearest
// decomposition node with an untried method, restores that node's
// frame, discards its current subtree, and clears subtree-scoped
// blacklist entries created inside it. Returns nil when a backtrack
// point was found, or the fatal exhaustion error when none exists.
func (s *session) backtrack(ctx context.Context, failed *soltree.Node, cause error) error {
	s.backtracks++
	if s.opts.MaxBacktrackDepth > 0 && s.backtracks > s.opts.MaxBacktrackDepth {
		return s.exhausted(failed, cause, fmt.Sprintf(
			"backtrack depth limit %d exceeded", s.opts.MaxBacktrackDepth))
	}

	for _, ancID := range s.tree.Ancestors(failed.ID) {
		anc, ok := s.tree.Node(ancID)
		if !ok || !s.hasUntriedAlternative(anc) {
			continue
		}

		f := s.frames[anc.ID]
		if f == nil {
			continue
		}

		discarded := s.tree.DetachChildren(anc.ID, "discarded by backtracking")
		discardedSet := make(map[types.ID]bool, len(discarded))
		for _, id := range discarded {
			discardedSet[id] = true
			delete(s.frames, id)
		}
		cleared := s.bl.ClearSubtree(discardedSet)

		s.st = f.snapshot.Copy()
		s.net.Rollback(f.checkpoint)
		s.lastAction = f.lastAction

		s.emit(ctx, EventBacktrack, map[string]any{
			"from": failed.ID.String(), "to": anc.ID.String(), "label": anc.Label(),
			"discarded": len(discarded), "blacklist_cleared": cleared,
		})
		s.eng.logger.Debug("backtracked", "session", s.id,
			"from", failed.Label(), "to", anc.Label(), "discarded", len(discarded))
		return nil
	}

	return s.exhausted(failed, cause, "no ancestor offers an untried alternative")
}

// hasUntriedAlternative reports whether the node is a decomposition
// node with at least one registered method not yet attempted.
func (s *session) hasUntriedAlternative(n *soltree.Node) bool {
	switch payload := n.Payload.(type) {
	case domain.Task:
		for _, m := range s.dom.ResolveTaskMethods(payload.Name) {
			if !n.Tried(m.Name) {
				return true
			}
		}
	case domain.Goal:
		if n.Kind != soltree.KindGoal {
			return false
		}
		for _, m := range s.dom.ResolveUnigoalMethods(payload.Predicate) {
			if !n.Tried(m.Name) {
				return true
			}
		}
	case domain.Multigoal:
		if n.Kind != soltree.KindMultigoal {
			return false
		}
		for _, m := range s.dom.ResolveMultigoalMethods(payload.Name) {
			if !n.Tried(m.Name) {
				return true
			}
		}
	}
	return false
}

func (s *session) exhausted(failed *soltree.Node, cause error, reason string) error {
	err := types.WrapError(types.NO_VIABLE_BACKTRACK_POINT,
		fmt.Sprintf("search space exhausted at %s: %s", failed.Label(), reason), cause).
		WithContext("failed_node", failed.ID.String()).
		WithContext("backtracks", s.backtracks).
		WithContext("attempts", s.trace.AttemptLines())

	keys := make([]string, 0, s.bl.Len())
	for _, e := range s.bl.Entries() {
		keys = append(keys, e.Key)
	}
	err = err.WithContext("blacklisted", keys)

	s.eng.logger.Warn("planning failed", "session", s.id,
		"failed_node", failed.Label(), "reason", reason, "backtracks", s.backtracks)
	return err
}

func (s *session) emit(ctx context.Context, eventType EventType, payload map[string]any) {
	_ = s.eng.emitter.Emit(ctx, Event{
		Type:      eventType,
		SessionID: s.id,
		Payload:   payload,
	})
}
