// Package schedule implements critical-path scheduling over a
// partial-order activity graph: Kahn topological sort with cycle
// reporting, a forward pass for earliest times, a backward pass for
// latest times, and per-activity slack.
//
// The input is deliberately a partial order. Unrelated activities stay
// unordered so real parallelism in the domain is preserved; only the
// dependency edges actually required for correctness participate.
package schedule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/types"
)

// Activity is one schedulable unit of work.
type Activity struct {
	// ID uniquely identifies the activity within one schedule.
	ID string `json:"id"`

	// Name is the display name (typically "action(arg, ...)").
	Name string `json:"name"`

	// Duration is the activity's duration in time units.
	Duration int64 `json:"duration"`

	// DependsOn lists the IDs of activities that must finish before
	// this activity starts.
	DependsOn []string `json:"depends_on,omitempty"`
}

// ScheduledActivity is an Activity annotated by the forward and
// backward passes.
type ScheduledActivity struct {
	Activity

	EarliestStart  int64 `json:"earliest_start"`
	EarliestFinish int64 `json:"earliest_finish"`
	LatestStart    int64 `json:"latest_start"`
	LatestFinish   int64 `json:"latest_finish"`

	// Slack is how far the start can slip without growing the makespan.
	// Zero slack means the activity is on the critical path.
	Slack int64 `json:"slack"`
}

// Critical reports whether the activity lies on the critical path.
func (a ScheduledActivity) Critical() bool {
	return a.Slack == 0
}

// Schedule is the critical-path-annotated view of an activity set.
type Schedule struct {
	// Activities in topological order.
	Activities []ScheduledActivity `json:"activities"`

	// Makespan is the earliest finish of the whole schedule.
	Makespan int64 `json:"makespan"`

	byID map[string]*ScheduledActivity
}

// Activity returns the scheduled activity with the given ID.
func (s *Schedule) Activity(id string) (*ScheduledActivity, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// CriticalPath returns the IDs of one zero-slack chain from a source
// activity to a sink whose finish equals the makespan.
func (s *Schedule) CriticalPath() []string {
	successors := make(map[string][]string)
	for _, a := range s.Activities {
		for _, dep := range a.DependsOn {
			successors[dep] = append(successors[dep], a.ID)
		}
	}

	var path []string
	var current *ScheduledActivity
	for i := range s.Activities {
		a := &s.Activities[i]
		if a.Critical() && len(a.DependsOn) == 0 {
			current = a
			break
		}
	}
	for current != nil {
		path = append(path, current.ID)
		var next *ScheduledActivity
		for _, succ := range successors[current.ID] {
			cand, ok := s.byID[succ]
			if !ok || !cand.Critical() {
				continue
			}
			// A successor can be critical through a different, longer
			// predecessor; the chain must stay temporally contiguous.
			if cand.EarliestStart != current.EarliestFinish {
				continue
			}
			next = cand
			break
		}
		current = next
	}
	return path
}

// Compute runs topological sort plus the forward and backward passes.
// A dependency cycle is reported as a SCHEDULE_CYCLE_DETECTED error
// naming the cycle; the sort never silently truncates.
func Compute(activities []Activity) (*Schedule, error) {
	if len(activities) == 0 {
		return &Schedule{byID: map[string]*ScheduledActivity{}}, nil
	}

	byID := make(map[string]Activity, len(activities))
	for _, a := range activities {
		if a.ID == "" {
			return nil, types.NewError(types.INVALID_TODO_ITEM, "activity must have an ID")
		}
		if _, dup := byID[a.ID]; dup {
			return nil, types.NewErrorf(types.INVALID_TODO_ITEM, "duplicate activity ID %q", a.ID)
		}
		if a.Duration < 0 {
			return nil, types.NewErrorf(types.INVALID_TODO_ITEM,
				"activity %q has negative duration %d", a.ID, a.Duration)
		}
		byID[a.ID] = a
	}
	for _, a := range activities {
		for _, dep := range a.DependsOn {
			if _, ok := byID[dep]; !ok {
				return nil, types.NewErrorf(types.INVALID_TODO_ITEM,
					"activity %q depends on unknown activity %q", a.ID, dep)
			}
		}
	}

	order, err := topologicalSort(activities, byID)
	if err != nil {
		return nil, err
	}

	sched := &Schedule{
		Activities: make([]ScheduledActivity, 0, len(activities)),
		byID:       make(map[string]*ScheduledActivity, len(activities)),
	}

	// Forward pass: earliest start is the max earliest finish over
	// predecessors; the makespan is the max earliest finish overall.
	earliestFinish := make(map[string]int64, len(activities))
	for _, id := range order {
		a := byID[id]
		var es int64
		for _, dep := range a.DependsOn {
			if ef := earliestFinish[dep]; ef > es {
				es = ef
			}
		}
		ef := es + a.Duration
		earliestFinish[id] = ef
		if ef > sched.Makespan {
			sched.Makespan = ef
		}
		sched.Activities = append(sched.Activities, ScheduledActivity{
			Activity:       a,
			EarliestStart:  es,
			EarliestFinish: ef,
		})
	}
	for i := range sched.Activities {
		sched.byID[sched.Activities[i].ID] = &sched.Activities[i]
	}

	// Backward pass: latest finish is the min latest start over
	// successors, seeded with the makespan for sinks.
	successors := make(map[string][]string, len(activities))
	for _, a := range activities {
		for _, dep := range a.DependsOn {
			successors[dep] = append(successors[dep], a.ID)
		}
	}
	for i := len(order) - 1; i >= 0; i-- {
		a := sched.byID[order[i]]
		lf := sched.Makespan
		for _, succ := range successors[a.ID] {
			if ls := sched.byID[succ].LatestStart; ls < lf {
				lf = ls
			}
		}
		a.LatestFinish = lf
		a.LatestStart = lf - a.Duration
		a.Slack = a.LatestStart - a.EarliestStart
	}

	return sched, nil
}

// topologicalSort orders activities using Kahn's algorithm (BFS with
// in-degree tracking). Ties are broken by activity ID so output is
// deterministic. On a cycle it reconstructs and reports the cycle path.
func topologicalSort(activities []Activity, byID map[string]Activity) ([]string, error) {
	inDegree := make(map[string]int, len(activities))
	successors := make(map[string][]string, len(activities))
	for _, a := range activities {
		inDegree[a.ID] += 0
		for _, dep := range a.DependsOn {
			successors[dep] = append(successors[dep], a.ID)
			inDegree[a.ID]++
		}
	}

	queue := make([]string, 0, len(activities))
	for id, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	order := make([]string, 0, len(activities))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		ready := []string{}
		for _, succ := range successors[current] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				ready = append(ready, succ)
			}
		}
		sort.Strings(ready)
		queue = append(queue, ready...)
	}

	if len(order) != len(activities) {
		cycle := findCycle(byID)
		return nil, types.NewErrorf(types.SCHEDULE_CYCLE_DETECTED,
			"cycle detected in activity graph: %s", strings.Join(cycle, " -> ")).
			WithContext("cycle", cycle)
	}
	return order, nil
}

// findCycle reconstructs one cycle path using DFS with color marking:
// white (0) = unvisited, gray (1) = in progress, black (2) = done.
func findCycle(byID map[string]Activity) []string {
	color := make(map[string]int, len(byID))
	parent := make(map[string]string, len(byID))

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var dfs func(id string) []string
	dfs = func(id string) []string {
		color[id] = 1
		deps := append([]string(nil), byID[id].DependsOn...)
		sort.Strings(deps)
		for _, dep := range deps {
			switch color[dep] {
			case 0:
				parent[dep] = id
				if cycle := dfs(dep); cycle != nil {
					return cycle
				}
			case 1:
				cycle := []string{dep}
				for current := id; current != dep; current = parent[current] {
					cycle = append([]string{current}, cycle...)
				}
				return append([]string{dep}, cycle...)
			}
		}
		color[id] = 2
		return nil
	}

	for _, id := range ids {
		if color[id] == 0 {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// String renders a compact one-line-per-activity view for logs.
func (s *Schedule) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "schedule makespan=%d\n", s.Makespan)
	for _, a := range s.Activities {
		marker := " "
		if a.Critical() {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %-24s start=[%d,%d] finish=[%d,%d] slack=%d\n",
			marker, a.Name, a.EarliestStart, a.LatestStart, a.EarliestFinish, a.LatestFinish, a.Slack)
	}
	return b.String()
}
