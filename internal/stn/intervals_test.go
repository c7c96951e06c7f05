package stn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialPair builds a network with two activities of the given
// durations, b strictly after a, both anchored at Origin.
func sequentialPair(t *testing.T, durA, durB int64) (*Network, Interval, Interval) {
	t.Helper()
	n := New()
	a := Interval{Start: n.AddTimePoint(), End: n.AddTimePoint()}
	b := Interval{Start: n.AddTimePoint(), End: n.AddTimePoint()}
	require.NoError(t, n.AddConstraints([]Constraint{
		{From: Origin, To: a.Start, Lower: 0, Upper: 0},
		{From: a.Start, To: a.End, Lower: durA, Upper: durA},
		{From: a.End, To: b.Start, Lower: 0, Upper: 0},
		{From: b.Start, To: b.End, Lower: durB, Upper: durB},
	}))
	return n, a, b
}

func TestMayOverlap(t *testing.T) {
	n := New()
	a := Interval{Start: n.AddTimePoint(), End: n.AddTimePoint()}
	b := Interval{Start: n.AddTimePoint(), End: n.AddTimePoint()}
	require.NoError(t, n.AddConstraints([]Constraint{
		{From: Origin, To: a.Start, Lower: 0, Upper: 10},
		{From: a.Start, To: a.End, Lower: 4, Upper: 4},
		{From: Origin, To: b.Start, Lower: 0, Upper: 10},
		{From: b.Start, To: b.End, Lower: 4, Upper: 4},
	}))

	// Both can run anywhere in [0,14]; nothing forces an order.
	assert.True(t, n.MayOverlap(a, b))
	assert.False(t, n.MustOverlap(a, b))
}

func TestMustOverlap(t *testing.T) {
	n := New()
	a := Interval{Start: n.AddTimePoint(), End: n.AddTimePoint()}
	b := Interval{Start: n.AddTimePoint(), End: n.AddTimePoint()}
	require.NoError(t, n.AddConstraints([]Constraint{
		{From: Origin, To: a.Start, Lower: 0, Upper: 0},
		{From: a.Start, To: a.End, Lower: 10, Upper: 10},
		// b runs entirely inside a's span.
		{From: Origin, To: b.Start, Lower: 3, Upper: 4},
		{From: b.Start, To: b.End, Lower: 2, Upper: 2},
	}))

	assert.True(t, n.MustOverlap(a, b))

	pairs := n.ConflictingPairs([]Interval{a, b})
	require.Len(t, pairs, 1)
	assert.Equal(t, [2]int{0, 1}, pairs[0])
}

func TestSequentialActivitiesDoNotConflict(t *testing.T) {
	n, a, b := sequentialPair(t, 2, 5)

	assert.False(t, n.MustOverlap(a, b))
	assert.Empty(t, n.ConflictingPairs([]Interval{a, b}))
}

func TestFreeSlots(t *testing.T) {
	n, a, b := sequentialPair(t, 2, 5)

	// a occupies [0,2], b occupies [2,7]; only [7,20] is free.
	slots := n.FreeSlots([]Interval{a, b}, 20, 1)
	require.Len(t, slots, 1)
	assert.Equal(t, Window{From: 7, To: 20}, slots[0])

	// A minimum duration above the slot length filters it out.
	assert.Empty(t, n.FreeSlots([]Interval{a, b}, 20, 14))
}

func TestFreeSlotsGapBetweenActivities(t *testing.T) {
	n := New()
	a := Interval{Start: n.AddTimePoint(), End: n.AddTimePoint()}
	b := Interval{Start: n.AddTimePoint(), End: n.AddTimePoint()}
	require.NoError(t, n.AddConstraints([]Constraint{
		{From: Origin, To: a.Start, Lower: 0, Upper: 0},
		{From: a.Start, To: a.End, Lower: 3, Upper: 3},
		{From: Origin, To: b.Start, Lower: 8, Upper: 8},
		{From: b.Start, To: b.End, Lower: 2, Upper: 2},
	}))

	slots := n.FreeSlots([]Interval{a, b}, 15, 1)
	require.Len(t, slots, 2)
	assert.Equal(t, Window{From: 3, To: 8}, slots[0])
	assert.Equal(t, Window{From: 10, To: 15}, slots[1])
}

func TestIntervalQueriesDoNotMutate(t *testing.T) {
	n, a, b := sequentialPair(t, 2, 5)
	before := snapshotBounds(n)

	n.MayOverlap(a, b)
	n.MustOverlap(a, b)
	n.ConflictingPairs([]Interval{a, b})
	n.FreeSlots([]Interval{a, b}, 20, 1)

	assert.Equal(t, before, snapshotBounds(n))
	assert.Len(t, n.Constraints(), 4)
}
