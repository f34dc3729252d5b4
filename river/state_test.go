package river

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateToTupleIgnoresInsertionOrder(t *testing.T) {
	a := MustState([]Entity{Goat, Wolf}, []Entity{Boat, Cabbage}, nil)
	b := MustState([]Entity{Wolf, Goat}, []Entity{Cabbage, Boat}, []Entity{})

	assert.Equal(t, a, b)
	assert.Equal(t, StateToTuple(a), StateToTuple(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, Tuple{"Goat,Wolf", "Boat,Cabbage", ""}, StateToTuple(a))
}

func TestNewStateRejectsNonPartitions(t *testing.T) {
	cases := map[string][3][]Entity{
		"missing":    {{Wolf, Goat}, {Boat}, nil},
		"duplicated": {{Wolf, Goat, Cabbage}, {Boat}, {Goat}},
		"unknown":    {{Wolf, Goat, Cabbage, Boat, Entity(7)}, nil, nil},
	}
	for name, sets := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewState(sets[0], sets[1], sets[2])
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPartition))
		})
	}
}

func TestAllStatesAreDistinctPartitions(t *testing.T) {
	states := AllStates()
	require.Len(t, states, 81)

	hashes := make(map[string]bool)
	for _, s := range states {
		hashes[s.Hash()] = true
		assertPartition(t, s)
	}
	assert.Len(t, hashes, 81)
}

func TestInitialAndGoalStates(t *testing.T) {
	assert.Equal(t, []Entity{Boat, Cabbage, Goat, Wolf}, InitialState().Set(LeftBank))
	assert.Empty(t, InitialState().Set(Transport))
	assert.Empty(t, InitialState().Set(RightBank))
	assert.Equal(t, []Entity{Boat, Cabbage, Goat, Wolf}, GoalState().Set(RightBank))
}

func TestMoveReturnsNewValue(t *testing.T) {
	s := InitialState()
	next := s.Move(Goat, LeftBank, Transport)

	assert.True(t, s.At(Goat, LeftBank))
	assert.True(t, next.At(Goat, Transport))
	assertPartition(t, next)
}

func TestParseEntity(t *testing.T) {
	e, err := ParseEntity(" cabbage ")
	require.NoError(t, err)
	assert.Equal(t, Cabbage, e)

	_, err = ParseEntity("dog")
	assert.ErrorIs(t, err, ErrInvalidPartition)
}

// assertPartition checks that the three location sets hold every entity
// exactly once
func assertPartition(t *testing.T, s State) {
	t.Helper()
	count := make(map[Entity]int)
	total := 0
	for _, l := range Locations() {
		for _, e := range s.Set(l) {
			count[e]++
			total++
		}
	}
	assert.Equal(t, NumEntities, total, "state %s", s)
	for _, e := range Entities() {
		assert.Equal(t, 1, count[e], "entity %s in state %s", e, s)
	}
}
