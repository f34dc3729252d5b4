package river

import (
	"github.com/zeu5/river-crossing-rl/types"
)

// GoalReward is paid on the step that reaches the goal state
const GoalReward = 100.0

// Environment is the wolf, goat and cabbage river crossing. Episodes
// start with everything on the left bank and end when everything is on
// the right bank or when the goat is left unsupervised with the wolf or
// the cabbage.
type Environment struct {
	state State
	done  bool
}

var _ types.Environment = &Environment{}
var _ types.GoalChecker = &Environment{}

func NewEnvironment() *Environment {
	return &Environment{
		state: InitialState(),
	}
}

// Reset returns the initial state and clears the done flag
func (e *Environment) Reset() types.State {
	e.state = InitialState()
	e.done = false
	return e.state
}

// Step applies the action with the given index. The returned time step
// carries a State value.
func (e *Environment) Step(action int) (*types.TimeStep, error) {
	a, err := ActionFromIndex(action)
	if err != nil {
		return nil, err
	}
	next := a.Apply(e.state)
	reward := 0.0
	if IsWinState(next) {
		reward = GoalReward
	}
	e.done = !IsValidState(next) || IsWinState(next)
	e.state = next
	return types.NewTimeStep(next, reward, e.done), nil
}

func (e *Environment) NumActions() int {
	return NumActions
}

// Current state of the environment
func (e *Environment) Current() State {
	return e.state
}

// Done reports whether the last step ended the episode
func (e *Environment) Done() bool {
	return e.done
}

func (e *Environment) IsGoal(s types.State) bool {
	rs, ok := s.(State)
	return ok && IsWinState(rs)
}

// IsWinState reports whether everything reached the right bank
func IsWinState(s State) bool {
	return s == GoalState()
}

// IsValidState reports whether nothing gets eaten: on either bank the goat
// may share the bank with the wolf or the cabbage only when the boat is
// there too. The goal state is always valid.
func IsValidState(s State) bool {
	if IsWinState(s) {
		return true
	}
	for _, bank := range []Location{LeftBank, RightBank} {
		if !s.At(Goat, bank) || s.At(Boat, bank) {
			continue
		}
		if s.At(Wolf, bank) || s.At(Cabbage, bank) {
			return false
		}
	}
	return true
}
