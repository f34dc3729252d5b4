package policies

import (
	"math"

	"github.com/zeu5/river-crossing-rl/types"
	"golang.org/x/exp/rand"
)

// EpsilonSchedule decays exploration geometrically per episode:
// epsilon(k) = max(Min, Max * Decay^k)
type EpsilonSchedule struct {
	Max   float64
	Min   float64
	Decay float64
}

// Epsilon for the given episode
func (s EpsilonSchedule) Epsilon(episode int) float64 {
	eps := s.Max * math.Pow(s.Decay, float64(episode))
	return math.Max(s.Min, math.Min(s.Max, eps))
}

// EpsilonGreedy explores uniformly with probability epsilon and acts
// greedily on the table otherwise
type EpsilonGreedy struct {
	greedy   *Greedy
	actions  int
	schedule EpsilonSchedule
	epsilon  float64
	rand     *rand.Rand
}

var _ types.Policy = &EpsilonGreedy{}
var _ types.EpisodeObserver = &EpsilonGreedy{}

func NewEpsilonGreedy(qTable *types.QTable, schedule EpsilonSchedule, seed uint64) *EpsilonGreedy {
	return &EpsilonGreedy{
		greedy:   NewGreedy(qTable),
		actions:  qTable.Actions(),
		schedule: schedule,
		epsilon:  schedule.Epsilon(0),
		rand:     rand.New(rand.NewSource(seedOrNow(seed))),
	}
}

func (e *EpsilonGreedy) StartEpisode(episode int) {
	e.epsilon = e.schedule.Epsilon(episode)
}

// Epsilon currently in use
func (e *EpsilonGreedy) Epsilon() float64 {
	return e.epsilon
}

func (e *EpsilonGreedy) NextAction(state types.State) int {
	if e.rand.Float64() < e.epsilon {
		return e.rand.Intn(e.actions)
	}
	return e.greedy.NextAction(state)
}
