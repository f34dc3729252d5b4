package policies

import "github.com/zeu5/river-crossing-rl/types"

// Greedy picks the action with the highest value in the table, the lowest
// index among equal values
type Greedy struct {
	qTable *types.QTable
}

var _ types.Policy = &Greedy{}

func NewGreedy(qTable *types.QTable) *Greedy {
	return &Greedy{qTable: qTable}
}

func (g *Greedy) NextAction(state types.State) int {
	action, _ := g.qTable.ArgMax(state.Hash())
	return action
}
