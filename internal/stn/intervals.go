package stn

import "sort"

// Interval pairs the start and end time points of a scheduled activity.
type Interval struct {
	Start TimePoint `json:"start"`
	End   TimePoint `json:"end"`
}

// Window is a concrete [From, To) span of time units relative to Origin.
type Window struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// Duration returns the length of the window.
func (w Window) Duration() int64 {
	return w.To - w.From
}

// MayOverlap reports whether the feasible execution windows of a and b
// intersect, i.e. some solution of the network executes them at
// overlapping times. Pure read; the network is not mutated.
func (n *Network) MayOverlap(a, b Interval) bool {
	return n.EarliestTime(a.Start) < n.LatestTime(b.End) &&
		n.EarliestTime(b.Start) < n.LatestTime(a.End)
}

// MustOverlap reports whether every solution of the network executes a
// and b at overlapping times: neither a-before-b nor b-before-a is
// feasible. Pure read; feasibility is decided from the relaxed matrix
// without inserting trial constraints.
func (n *Network) MustOverlap(a, b Interval) bool {
	// a.End <= b.Start is feasible iff t(b.Start) - t(a.End) can reach 0.
	aBeforeB := n.dist[a.End][b.Start] >= 0
	bBeforeA := n.dist[b.End][a.Start] >= 0
	return !aBeforeB && !bBeforeA
}

// ConflictingPairs returns the index pairs of intervals that must
// overlap in every solution. Callers use this to detect activities that
// can never be serialized against each other.
func (n *Network) ConflictingPairs(intervals []Interval) [][2]int {
	var pairs [][2]int
	for i := 0; i < len(intervals); i++ {
		for j := i + 1; j < len(intervals); j++ {
			if n.MustOverlap(intervals[i], intervals[j]) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// FreeSlots returns the maximal windows within [0, horizon) that no
// interval's feasible execution window covers, keeping only slots of at
// least minDuration. Pure read over the relaxed network.
func (n *Network) FreeSlots(intervals []Interval, horizon, minDuration int64) []Window {
	occupied := make([]Window, 0, len(intervals))
	for _, iv := range intervals {
		w := Window{From: n.EarliestTime(iv.Start), To: n.LatestTime(iv.End)}
		if w.From < 0 {
			w.From = 0
		}
		if w.To > horizon {
			w.To = horizon
		}
		if w.From < w.To {
			occupied = append(occupied, w)
		}
	}
	sort.Slice(occupied, func(i, j int) bool { return occupied[i].From < occupied[j].From })

	var slots []Window
	cursor := int64(0)
	for _, w := range occupied {
		if w.From > cursor {
			slot := Window{From: cursor, To: w.From}
			if slot.Duration() >= minDuration {
				slots = append(slots, slot)
			}
		}
		if w.To > cursor {
			cursor = w.To
		}
	}
	if horizon > cursor {
		slot := Window{From: cursor, To: horizon}
		if slot.Duration() >= minDuration {
			slots = append(slots, slot)
		}
	}
	return slots
}
