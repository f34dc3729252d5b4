package river

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/river-crossing-rl/policies"
	"github.com/zeu5/river-crossing-rl/types"
)

func TestQLearningSolvesPuzzle(t *testing.T) {
	if testing.Short() {
		t.Skip("trains for 10000 episodes")
	}
	env := NewEnvironment()
	table := types.NewQTable(NumActions)
	target := policies.NewGreedy(table)

	untrained, err := types.SuccessRate(env, policies.NewGreedy(types.NewQTable(NumActions)), 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 0.0, untrained)

	stats, err := types.QLearning(context.Background(), env, policies.NewUniformRandom(NumActions, 42), target, table, 10000, types.DefaultAlpha, types.DefaultGamma)
	require.NoError(t, err)
	assert.Len(t, stats.Results()[types.ReturnsKey], 10000)
	assert.Greater(t, stats.Count(types.OutcomeWon), 0)
	for i, o := range stats.Outcomes {
		if o == types.OutcomeWon {
			assert.Equal(t, GoalReward, stats.Returns[i])
		} else {
			assert.Equal(t, 0.0, stats.Returns[i])
		}
	}

	trace, outcome, err := types.Rollout(env, target, 50)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeWon, outcome)
	assert.GreaterOrEqual(t, trace.Len(), 14)
	for i := 0; i < trace.Len(); i++ {
		_, _, _, next, _ := trace.Get(i)
		assert.True(t, IsValidState(next.(State)), "step %d", i)
	}

	// every state keeps its hash across the table
	for _, hash := range table.States() {
		found := false
		for _, s := range AllStates() {
			if s.Hash() == hash {
				found = true
				break
			}
		}
		assert.True(t, found, hash)
	}
}

func TestEpsilonGreedyTrainingRecordsEveryEpisode(t *testing.T) {
	env := NewEnvironment()
	table := types.NewQTable(NumActions)
	explore := policies.NewEpsilonGreedy(table, policies.EpsilonSchedule{Max: 1, Min: 0.1, Decay: 0.9}, 7)

	stats, err := types.QLearning(context.Background(), env, explore, policies.NewGreedy(table), table, 200, types.DefaultAlpha, types.DefaultGamma)
	require.NoError(t, err)
	assert.Equal(t, 200, stats.Episodes())
	assert.InDelta(t, 0.1, explore.Epsilon(), 1e-9)
	assert.Greater(t, table.Len(), 0)
}
