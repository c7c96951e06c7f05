package stn

import (
	"math/rand"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/types"
)

func TestAddTimePoint(t *testing.T) {
	n := New()
	assert.Equal(t, 1, n.NumTimePoints()) // Origin

	a := n.AddTimePoint()
	b := n.AddTimePoint()
	assert.Equal(t, TimePoint(1), a)
	assert.Equal(t, TimePoint(2), b)
	assert.Equal(t, 3, n.NumTimePoints())

	// Fresh points are unconstrained relative to each other.
	lower, upper := n.Distance(a, b)
	assert.Equal(t, -Inf, lower)
	assert.Equal(t, Inf, upper)
}

func TestAddConstraintTightensBounds(t *testing.T) {
	n := New()
	a := n.AddTimePoint()
	b := n.AddTimePoint()

	require.NoError(t, n.AddConstraint(a, b, 2, 5))
	lower, upper := n.Distance(a, b)
	assert.Equal(t, int64(2), lower)
	assert.Equal(t, int64(5), upper)

	// A second, tighter constraint narrows the interval.
	require.NoError(t, n.AddConstraint(a, b, 3, 4))
	lower, upper = n.Distance(a, b)
	assert.Equal(t, int64(3), lower)
	assert.Equal(t, int64(4), upper)
}

func TestConstraintValidation(t *testing.T) {
	n := New()
	a := n.AddTimePoint()

	err := n.AddConstraint(a, Origin, 7, 3)
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.STN_INVALID_CONSTRAINT))

	err = n.AddConstraint(a, TimePoint(99), 0, 1)
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.STN_UNKNOWN_TIME_POINT))
}

func TestNegativeCycleDetection(t *testing.T) {
	n := New()
	a := n.AddTimePoint()
	b := n.AddTimePoint()

	require.NoError(t, n.AddConstraint(a, b, 5, 10))
	assert.True(t, n.IsConsistent())

	// b must also precede a by at least 1: negative cycle.
	err := n.AddConstraint(b, a, 1, 20)
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.STN_INCONSISTENT))
	assert.False(t, n.IsConsistent())

	// Terminal: further insertions are rejected outright.
	err = n.AddConstraint(a, b, 0, 1)
	assert.True(t, types.IsCode(err, types.STN_INCONSISTENT))
}

func TestWindowPlusGapIsInconsistent(t *testing.T) {
	// Two activities constrained to start within a 5-unit window while
	// also being separated by a required 10-unit gap.
	n := New()
	a := n.AddTimePoint()
	b := n.AddTimePoint()

	require.NoError(t, n.AddConstraint(Origin, a, 0, 5))
	require.NoError(t, n.AddConstraint(Origin, b, 0, 5))
	err := n.AddConstraint(a, b, 10, Inf)
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.STN_INCONSISTENT))
}

func TestRelaxationIdempotence(t *testing.T) {
	n := New()
	a := n.AddTimePoint()
	b := n.AddTimePoint()
	c := n.AddTimePoint()
	require.NoError(t, n.AddConstraints([]Constraint{
		{From: Origin, To: a, Lower: 0, Upper: 10},
		{From: a, To: b, Lower: 2, Upper: 4},
		{From: b, To: c, Lower: 1, Upper: 3},
		{From: a, To: c, Lower: 0, Upper: 5},
	}))

	before := snapshotBounds(n)
	n.relax()
	assert.Equal(t, before, snapshotBounds(n), "second relaxation must not tighten further")
}

func TestInsertionOrderIndependence(t *testing.T) {
	base := []Constraint{
		{From: Origin, To: 1, Lower: 0, Upper: 10},
		{From: 1, To: 2, Lower: 2, Upper: 4},
		{From: 2, To: 3, Lower: 1, Upper: 3},
		{From: 1, To: 3, Lower: 0, Upper: 5},
		{From: Origin, To: 3, Lower: 3, Upper: 12},
	}

	rng := rand.New(rand.NewSource(7))
	reference := buildFrom(t, base)
	want := snapshotBounds(reference)

	for trial := 0; trial < 10; trial++ {
		shuffled := make([]Constraint, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		n := buildFrom(t, shuffled)
		assert.Equal(t, want, snapshotBounds(n), "trial %d", trial)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	constraints := []Constraint{
		{From: Origin, To: 1, Lower: 0, Upper: 20},
		{From: 1, To: 2, Lower: 2, Upper: 8},
		{From: 2, To: 3, Lower: 1, Upper: 6},
		{From: 1, To: 4, Lower: 3, Upper: 9},
		{From: 4, To: 3, Lower: 0, Upper: 4},
		{From: Origin, To: 3, Lower: 5, Upper: 18},
	}

	serial := New()
	parallel := New(WithParallelRelaxation(4))
	for i := 0; i < 4; i++ {
		serial.AddTimePoint()
		parallel.AddTimePoint()
	}
	require.NoError(t, serial.AddConstraints(constraints))
	require.NoError(t, parallel.AddConstraints(constraints))

	assert.Equal(t, snapshotBounds(serial), snapshotBounds(parallel))
}

func TestWorkerOptionMapping(t *testing.T) {
	assert.Equal(t, 1, New().Workers(), "default is serial")
	assert.Equal(t, 1, New(WithParallelRelaxation(1)).Workers())
	assert.Equal(t, 4, New(WithParallelRelaxation(4)).Workers())
	assert.Equal(t, runtime.GOMAXPROCS(0), New(WithParallelRelaxation(0)).Workers(),
		"non-positive selects one worker per processor")
}

func TestRollback(t *testing.T) {
	n := New()
	a := n.AddTimePoint()
	b := n.AddTimePoint()
	require.NoError(t, n.AddConstraint(Origin, a, 0, 5))

	cp := n.Checkpoint()
	require.NoError(t, n.AddConstraint(Origin, b, 0, 5))
	err := n.AddConstraint(a, b, 10, 20)
	require.True(t, types.IsCode(err, types.STN_INCONSISTENT))
	assert.False(t, n.IsConsistent())

	n.Rollback(cp)
	assert.True(t, n.IsConsistent())
	assert.Len(t, n.Constraints(), 1)

	// Pre-checkpoint bounds survive; the rest is unconstrained again.
	lower, upper := n.Distance(Origin, a)
	assert.Equal(t, int64(0), lower)
	assert.Equal(t, int64(5), upper)
	lower, upper = n.Distance(Origin, b)
	assert.Equal(t, -Inf, lower)
	assert.Equal(t, Inf, upper)

	// The network accepts new constraints after rollback.
	require.NoError(t, n.AddConstraint(a, b, 1, 2))
}

func buildFrom(t *testing.T, constraints []Constraint) *Network {
	t.Helper()
	n := New()
	for i := 0; i < 4; i++ {
		n.AddTimePoint()
	}
	require.NoError(t, n.AddConstraints(constraints))
	return n
}

func snapshotBounds(n *Network) [][2]int64 {
	size := n.NumTimePoints()
	out := make([][2]int64, 0, size*size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			lower, upper := n.Distance(TimePoint(i), TimePoint(j))
			out = append(out, [2]int64{lower, upper})
		}
	}
	return out
}
