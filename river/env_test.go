package river

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// classicalSolution crosses goat, returns, wolf, goat back, cabbage,
// returns, goat
func classicalSolution(t *testing.T) []int {
	t.Helper()
	goat, wolf, cabbage := Goat, Wolf, Cabbage
	crossings := []struct {
		cargo    *Entity
		from, to Location
	}{
		{&goat, LeftBank, RightBank},
		{nil, RightBank, LeftBank},
		{&wolf, LeftBank, RightBank},
		{&goat, RightBank, LeftBank},
		{&cabbage, LeftBank, RightBank},
		{nil, RightBank, LeftBank},
		{&goat, LeftBank, RightBank},
	}
	out := make([]int, 0, 2*len(crossings))
	for _, c := range crossings {
		pair, err := Crossing(c.cargo, c.from, c.to)
		require.NoError(t, err)
		out = append(out, pair[0].Index, pair[1].Index)
	}
	return out
}

func TestClassicalSolutionReachesGoal(t *testing.T) {
	solution := classicalSolution(t)
	require.Equal(t, []int{4, 7, 15, 12, 8, 11, 6, 5, 0, 3, 15, 12, 4, 7}, solution)

	env := NewEnvironment()
	env.Reset()
	for i, action := range solution {
		ts, err := env.Step(action)
		require.NoError(t, err)
		s := ts.State.(State)
		require.True(t, IsValidState(s), "invalid state %s after step %d", s, i)
		if i < len(solution)-1 {
			require.False(t, ts.Done, "episode ended early at step %d", i)
			require.Zero(t, ts.Reward)
			continue
		}
		assert.True(t, ts.Done)
		assert.Equal(t, GoalReward, ts.Reward)
		assert.True(t, IsWinState(s))
		assert.True(t, env.IsGoal(s))
	}
}

func TestIsValidState(t *testing.T) {
	for _, s := range AllStates() {
		expected := true
		for _, bank := range []Location{LeftBank, RightBank} {
			unsupervised := s.At(Goat, bank) && !s.At(Boat, bank)
			if unsupervised && (s.At(Wolf, bank) || s.At(Cabbage, bank)) {
				expected = false
			}
		}
		assert.Equal(t, expected, IsValidState(s), "state %s", s)
	}
	assert.True(t, IsValidState(GoalState()))
	assert.False(t, IsValidState(MustState([]Entity{Wolf, Goat}, []Entity{Boat, Cabbage}, nil)))
	assert.False(t, IsValidState(MustState([]Entity{Wolf}, nil, []Entity{Goat, Cabbage, Boat}).Move(Boat, RightBank, Transport)))
}

func TestRewardOnlyOnGoal(t *testing.T) {
	env := NewEnvironment()
	for _, s := range AllStates() {
		for a := 0; a < NumActions; a++ {
			env.Reset()
			env.state = s
			ts, err := env.Step(a)
			require.NoError(t, err)
			next := ts.State.(State)
			if next == GoalState() {
				assert.Equal(t, GoalReward, ts.Reward)
				assert.True(t, ts.Done)
			} else {
				assert.Zero(t, ts.Reward)
				assert.Equal(t, !IsValidState(next), ts.Done)
			}
			assert.NotNil(t, ts.Info)
			assert.Empty(t, ts.Info)
		}
	}
}

func TestStepOutOfRange(t *testing.T) {
	env := NewEnvironment()
	env.Reset()
	for _, a := range []int{-1, NumActions} {
		_, err := env.Step(a)
		assert.ErrorIs(t, err, ErrActionOutOfRange)
	}
	assert.Equal(t, InitialState(), env.Current())
}

func TestStepKeepsPreviousStates(t *testing.T) {
	env := NewEnvironment()
	first := env.Reset().(State)
	ts, err := env.Step(4)
	require.NoError(t, err)

	assert.Equal(t, InitialState(), first)
	assert.NotEqual(t, first, ts.State)
	assert.Equal(t, ts.State, env.Current())
}

func TestResetClearsDone(t *testing.T) {
	env := NewEnvironment()
	env.Reset()
	// wolf leaves with the player, goat and cabbage stay alone
	ts, err := env.Step(8)
	require.NoError(t, err)
	require.True(t, ts.Done)
	require.True(t, env.Done())

	s := env.Reset()
	assert.False(t, env.Done())
	assert.Equal(t, InitialState(), s)
}

func TestRandomWalksKeepPartition(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	env := NewEnvironment()
	for episode := 0; episode < 200; episode++ {
		env.Reset()
		for step := 0; step < 100; step++ {
			ts, err := env.Step(rng.Intn(NumActions))
			require.NoError(t, err)
			assertPartition(t, ts.State.(State))
			if ts.Done {
				break
			}
		}
	}
}
