package policies

import (
	"math"

	"github.com/zeu5/river-crossing-rl/types"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Softmax samples actions with probability proportional to
// exp(Q(s, a) / temperature)
type Softmax struct {
	qTable      *types.QTable
	temperature float64
	src         rand.Source
}

var _ types.Policy = &Softmax{}

func NewSoftmax(qTable *types.QTable, temperature float64, seed uint64) *Softmax {
	if temperature <= 0 {
		temperature = 1
	}
	return &Softmax{
		qTable:      qTable,
		temperature: temperature,
		src:         rand.NewSource(seedOrNow(seed)),
	}
}

// Weights are the action probabilities for the state
func (s *Softmax) Weights(state types.State) []float64 {
	stateHash := state.Hash()
	actions := s.qTable.Actions()
	vals := make([]float64, actions)
	maxVal := math.Inf(-1)
	for a := 0; a < actions; a++ {
		vals[a] = s.qTable.Get(stateHash, a) / s.temperature
		maxVal = math.Max(maxVal, vals[a])
	}
	sum := 0.0
	for a, v := range vals {
		// shifted by the max to keep exp finite
		vals[a] = math.Exp(v - maxVal)
		sum += vals[a]
	}
	for a := range vals {
		vals[a] /= sum
	}
	return vals
}

func (s *Softmax) NextAction(state types.State) int {
	i, ok := sampleuv.NewWeighted(s.Weights(state), s.src).Take()
	if !ok {
		return 0
	}
	return i
}
