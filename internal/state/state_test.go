package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	s := New("world")

	_, ok := s.Get("loc", "box")
	assert.False(t, ok)

	s.Set("loc", "box", "dock")
	v, ok := s.Get("loc", "box")
	require.True(t, ok)
	assert.Equal(t, "dock", v)

	s.Set("loc", "box", "warehouse")
	v, _ = s.Get("loc", "box")
	assert.Equal(t, "warehouse", v)

	s.Delete("loc", "box")
	_, ok = s.Get("loc", "box")
	assert.False(t, ok)
}

func TestMatches(t *testing.T) {
	s := New("world")
	s.Set("loc", "box", "dock")
	s.Set(PredCapabilities, "crane1", []string{"lift", "rotate"})

	assert.True(t, s.Matches("loc", "box", "dock"))
	assert.False(t, s.Matches("loc", "box", "warehouse"))
	assert.False(t, s.Matches("loc", "truck", "dock"))
	assert.True(t, s.Matches(PredCapabilities, "crane1", []string{"lift", "rotate"}))
}

func TestPredicatesAndSubjectsSorted(t *testing.T) {
	s := New("world")
	s.Set("loc", "crate", "dock")
	s.Set("loc", "box", "dock")
	s.Set("available", "truck1", true)

	assert.Equal(t, []string{"available", "loc"}, s.Predicates())
	assert.Equal(t, []string{"box", "crate"}, s.Subjects("loc"))
	assert.Empty(t, s.Subjects("unknown"))
}

func TestCopyIsolation(t *testing.T) {
	s := New("world")
	s.Set("loc", "box", "dock")
	s.Set(PredCapabilities, "crane1", []string{"lift"})

	c := s.Copy()
	c.Set("loc", "box", "warehouse")
	c.Set(PredCapabilities, "crane1", []string{"lift", "rotate"})

	// Mutations of the copy must not leak into the original.
	assert.True(t, s.Matches("loc", "box", "dock"))
	assert.True(t, s.Matches(PredCapabilities, "crane1", []string{"lift"}))
	assert.True(t, c.Matches("loc", "box", "warehouse"))
}

func TestCopySliceAliasing(t *testing.T) {
	s := New("world")
	caps := []string{"lift"}
	s.Set(PredCapabilities, "crane1", caps)

	c := s.Copy()
	v, ok := c.Get(PredCapabilities, "crane1")
	require.True(t, ok)
	copied := v.([]string)
	copied[0] = "dig"

	assert.True(t, s.HasCapability("crane1", "lift"))
	assert.False(t, s.HasCapability("crane1", "dig"))
}

func TestFindAvailableEntity(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(s *State)
		typ        string
		caps       []string
		wantEntity string
		wantFound  bool
	}{
		{
			name: "entity with all capabilities",
			setup: func(s *State) {
				s.Set(PredEntityType, "crane1", "crane")
				s.Set(PredCapabilities, "crane1", []string{"lift", "rotate"})
				s.Set(PredAvailable, "crane1", true)
			},
			typ:        "crane",
			caps:       []string{"lift"},
			wantEntity: "crane1",
			wantFound:  true,
		},
		{
			name: "unavailable entity is skipped",
			setup: func(s *State) {
				s.Set(PredEntityType, "crane1", "crane")
				s.Set(PredCapabilities, "crane1", []string{"lift"})
				s.Set(PredAvailable, "crane1", false)
			},
			typ:       "crane",
			caps:      []string{"lift"},
			wantFound: false,
		},
		{
			name: "missing capability",
			setup: func(s *State) {
				s.Set(PredEntityType, "crane1", "crane")
				s.Set(PredCapabilities, "crane1", []string{"lift"})
				s.Set(PredAvailable, "crane1", true)
			},
			typ:       "crane",
			caps:      []string{"lift", "underwater"},
			wantFound: false,
		},
		{
			name: "wrong type",
			setup: func(s *State) {
				s.Set(PredEntityType, "truck1", "truck")
				s.Set(PredAvailable, "truck1", true)
			},
			typ:       "crane",
			caps:      nil,
			wantFound: false,
		},
		{
			name: "deterministic pick among candidates",
			setup: func(s *State) {
				for _, e := range []string{"crane2", "crane1"} {
					s.Set(PredEntityType, e, "crane")
					s.Set(PredAvailable, e, true)
				}
			},
			typ:        "crane",
			caps:       nil,
			wantEntity: "crane1",
			wantFound:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("world")
			tt.setup(s)

			entity, found := s.FindAvailableEntity(tt.typ, tt.caps)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantEntity, entity)
			}
		})
	}
}
