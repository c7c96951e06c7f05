// Package stn implements a Simple Temporal Network: time points,
// interval constraints on the signed distance between them, and a
// path-consistency solver over an all-pairs distance matrix.
//
// The network is exclusively owned by one planning session. It grows as
// activities are scheduled; constraints can be rolled back to a journal
// checkpoint when the refinement engine backtracks, but time points are
// never removed before the whole network is discarded.
package stn

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/types"
)

// TimePoint is an opaque identifier for an instant in the network,
// typically the start or end of an activity.
type TimePoint int

// Origin is the implicit zero-time reference point every network is
// created with.
const Origin TimePoint = 0

// Inf is the distance value meaning "unconstrained". It is kept well
// below the int64 maximum so additions cannot overflow during
// relaxation.
const Inf int64 = 1 << 50

// Constraint bounds the signed distance between two time points:
// Lower <= t(To) - t(From) <= Upper.
type Constraint struct {
	From  TimePoint `json:"from"`
	To    TimePoint `json:"to"`
	Lower int64     `json:"lower"`
	Upper int64     `json:"upper"`
}

// Checkpoint marks a journal position that Rollback can restore.
type Checkpoint struct {
	journalLen int
	points     int
}

// Network owns the time points, the constraint journal, and the derived
// all-pairs distance matrix. The matrix is always either fully relaxed
// or the network is marked inconsistent; readers never observe a stale
// intermediate.
//
// Network is not safe for concurrent use; the refinement loop is its
// single owner.
type Network struct {
	dist       [][]int64
	journal    []Constraint
	consistent bool
	workers    int
}

// Option configures a Network.
type Option func(*Network)

// WithParallelRelaxation enables parallel triple relaxation using up to
// workers goroutines. The relaxation fixed point is order-independent,
// so parallel and serial runs produce identical bounds. workers == 1
// keeps the serial path; workers <= 0 selects GOMAXPROCS workers.
func WithParallelRelaxation(workers int) Option {
	return func(n *Network) {
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		n.workers = workers
	}
}

// New creates a network containing only the Origin time point.
func New(opts ...Option) *Network {
	n := &Network{
		dist:       [][]int64{{0}},
		consistent: true,
		workers:    1,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Workers returns the goroutine count used for triple relaxation; 1
// means the serial path.
func (n *Network) Workers() int {
	return n.workers
}

// AddTimePoint creates a fresh, initially unconstrained time point.
func (n *Network) AddTimePoint() TimePoint {
	size := len(n.dist)
	for i := range n.dist {
		n.dist[i] = append(n.dist[i], Inf)
	}
	row := make([]int64, size+1)
	for j := range row {
		row[j] = Inf
	}
	row[size] = 0
	n.dist = append(n.dist, row)
	return TimePoint(size)
}

// NumTimePoints returns the number of time points, including Origin.
func (n *Network) NumTimePoints() int {
	return len(n.dist)
}

// AddConstraint inserts Lower <= t(to) - t(from) <= Upper and re-runs
// path consistency. An inconsistency verdict is terminal for the
// inserting node: the constraint is journaled, the network stays marked
// inconsistent, and only Rollback can restore a consistent prefix.
func (n *Network) AddConstraint(from, to TimePoint, lower, upper int64) error {
	return n.AddConstraints([]Constraint{{From: from, To: to, Lower: lower, Upper: upper}})
}

// AddConstraints inserts a batch of constraints and runs a single
// relaxation pass afterwards.
func (n *Network) AddConstraints(batch []Constraint) error {
	if !n.consistent {
		return types.NewError(types.STN_INCONSISTENT, "network already inconsistent")
	}
	for _, c := range batch {
		if err := n.validate(c); err != nil {
			return err
		}
	}
	for _, c := range batch {
		n.apply(c)
		n.journal = append(n.journal, c)
	}
	n.relax()
	if !n.consistent {
		return types.NewError(types.STN_INCONSISTENT, "constraint batch produced a negative cycle").
			WithContext("batch_size", len(batch))
	}
	return nil
}

func (n *Network) validate(c Constraint) error {
	if c.Lower > c.Upper {
		return types.NewErrorf(types.STN_INVALID_CONSTRAINT,
			"lower bound %d exceeds upper bound %d", c.Lower, c.Upper)
	}
	size := TimePoint(len(n.dist))
	if c.From < 0 || c.From >= size || c.To < 0 || c.To >= size {
		return types.NewErrorf(types.STN_UNKNOWN_TIME_POINT,
			"constraint references unknown time point (%d -> %d)", c.From, c.To)
	}
	return nil
}

func (n *Network) apply(c Constraint) {
	if c.Upper < n.dist[c.From][c.To] {
		n.dist[c.From][c.To] = c.Upper
	}
	if -c.Lower < n.dist[c.To][c.From] {
		n.dist[c.To][c.From] = -c.Lower
	}
}

// relax runs the all-pairs shortest-path relaxation to a fixed point
// and updates the consistency verdict. The result does not depend on
// the order constraints were inserted.
func (n *Network) relax() {
	if n.workers > 1 {
		n.relaxParallel()
	} else {
		n.relaxSerial()
	}
	for i := range n.dist {
		if n.dist[i][i] < 0 {
			n.consistent = false
			return
		}
	}
	n.consistent = true
}

func (n *Network) relaxSerial() {
	size := len(n.dist)
	for k := 0; k < size; k++ {
		for i := 0; i < size; i++ {
			dik := n.dist[i][k]
			if dik >= Inf {
				continue
			}
			for j := 0; j < size; j++ {
				if dkj := n.dist[k][j]; dkj < Inf && dik+dkj < n.dist[i][j] {
					n.dist[i][j] = dik + dkj
				}
			}
		}
	}
}

// relaxParallel distributes the inner rows of each k-iteration across a
// worker group. For a fixed k, row i only writes row i and reads rows i
// and k; row k itself reaches its fixed point first, so the result is
// identical to the serial pass.
func (n *Network) relaxParallel() {
	size := len(n.dist)
	for k := 0; k < size; k++ {
		n.relaxRow(k, k)

		g, _ := errgroup.WithContext(context.Background())
		g.SetLimit(n.workers)
		for i := 0; i < size; i++ {
			if i == k {
				continue
			}
			i := i
			g.Go(func() error {
				n.relaxRow(i, k)
				return nil
			})
		}
		// Workers never return errors; Wait is only a join point.
		_ = g.Wait()
	}
}

func (n *Network) relaxRow(i, k int) {
	dik := n.dist[i][k]
	if dik >= Inf {
		return
	}
	row := n.dist[i]
	krow := n.dist[k]
	for j := range row {
		if dkj := krow[j]; dkj < Inf && dik+dkj < row[j] {
			row[j] = dik + dkj
		}
	}
}

// IsConsistent reports whether the relaxed network admits a solution.
func (n *Network) IsConsistent() bool {
	return n.consistent
}

// Distance returns the derived bounds on t(to) - t(from) in the relaxed
// network: the tightest [lower, upper] interval implied by all
// constraints together.
func (n *Network) Distance(from, to TimePoint) (lower, upper int64) {
	return -n.dist[to][from], n.dist[from][to]
}

// EarliestTime returns the earliest feasible time of p relative to Origin.
func (n *Network) EarliestTime(p TimePoint) int64 {
	lower, _ := n.Distance(Origin, p)
	return lower
}

// LatestTime returns the latest feasible time of p relative to Origin.
func (n *Network) LatestTime(p TimePoint) int64 {
	_, upper := n.Distance(Origin, p)
	return upper
}

// Checkpoint captures the current journal position for later rollback.
func (n *Network) Checkpoint() Checkpoint {
	return Checkpoint{journalLen: len(n.journal), points: len(n.dist)}
}

// Rollback discards every constraint journaled after cp and rebuilds
// the distance matrix from the surviving prefix. Time points created
// after cp are kept but become unconstrained again.
func (n *Network) Rollback(cp Checkpoint) {
	if cp.journalLen > len(n.journal) {
		return
	}
	n.journal = n.journal[:cp.journalLen]

	size := len(n.dist)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if i == j {
				n.dist[i][j] = 0
			} else {
				n.dist[i][j] = Inf
			}
		}
	}
	for _, c := range n.journal {
		n.apply(c)
	}
	n.relax()
}

// Constraints returns a copy of the journal, in insertion order.
func (n *Network) Constraints() []Constraint {
	out := make([]Constraint, len(n.journal))
	copy(out, n.journal)
	return out
}
