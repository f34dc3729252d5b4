package river

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionSpace(t *testing.T) {
	all := Actions()
	require.Len(t, all, NumActions)

	names := make(map[string]bool)
	withCargo := 0
	for i, a := range all {
		assert.Equal(t, i, a.Index)
		names[a.String()] = true
		if a.Cargo != nil {
			withCargo++
		}
		// every move goes between a bank and the river
		assert.True(t, a.From == Transport || a.To == Transport, "action %s", a)
		assert.NotEqual(t, a.From, a.To)
	}
	assert.Len(t, names, NumActions)
	assert.Equal(t, 12, withCargo)
}

func TestActionFromIndexOutOfRange(t *testing.T) {
	for _, i := range []int{-1, NumActions, 100} {
		_, err := ActionFromIndex(i)
		assert.ErrorIs(t, err, ErrActionOutOfRange)
	}
	a, err := ActionFromIndex(4)
	require.NoError(t, err)
	assert.Equal(t, "MoveGoatAndPlayerLeftToBoat", a.String())
}

// preconditionHolds restates the action table independently of Apply
func preconditionHolds(s State, a Action) bool {
	if a.Cargo == nil {
		if a.From == Transport {
			return len(s.Set(Transport)) == 1 && s.At(Boat, Transport)
		}
		return s.At(Boat, a.From)
	}
	return s.At(Boat, a.From) && s.At(*a.Cargo, a.From)
}

func TestApplyIsNoopWhenPreconditionFails(t *testing.T) {
	for _, s := range AllStates() {
		for _, a := range Actions() {
			next := a.Apply(s)
			assertPartition(t, next)
			if !preconditionHolds(s, a) {
				assert.Equal(t, s, next, "action %s on %s", a, s)
				continue
			}
			assert.True(t, next.At(Boat, a.To), "action %s on %s", a, s)
			if a.Cargo != nil {
				assert.True(t, next.At(*a.Cargo, a.To), "action %s on %s", a, s)
			}
		}
	}
}

func TestApplyDoesNotModifyReceiver(t *testing.T) {
	s := InitialState()
	a, err := ActionFromIndex(4)
	require.NoError(t, err)
	next := a.Apply(s)

	assert.Equal(t, InitialState(), s)
	assert.Equal(t, []Entity{Boat, Goat}, next.Set(Transport))
}

func TestCrossing(t *testing.T) {
	goat := Goat
	c, err := Crossing(&goat, LeftBank, RightBank)
	require.NoError(t, err)
	assert.Equal(t, 4, c[0].Index)
	assert.Equal(t, 7, c[1].Index)

	c, err = Crossing(nil, RightBank, LeftBank)
	require.NoError(t, err)
	assert.Equal(t, 15, c[0].Index)
	assert.Equal(t, 12, c[1].Index)

	_, err = Crossing(nil, LeftBank, Transport)
	assert.Error(t, err)
}
