package types

// Environment is a discrete action environment an Agent is trained on.
type Environment interface {
	// Reset called at the start of each episode, returns the initial state
	Reset() State
	// Step applies the action with the given index to the current state.
	// Indices outside [0, NumActions()) return an error.
	Step(int) (*TimeStep, error)
	// Number of actions, constant for the environment
	NumActions() int
}

// GoalChecker is implemented by environments that can tell a successful
// terminal state apart from a failed one
type GoalChecker interface {
	IsGoal(State) bool
}

// State of the system that RL policies observe
type State interface {
	// Indexed by the Hash
	// Should be deterministic
	Hash() string
}

// TimeStep is the outcome of a single environment step
type TimeStep struct {
	State  State
	Reward float64
	Done   bool
	Info   map[string]interface{}
}

func NewTimeStep(state State, reward float64, done bool) *TimeStep {
	return &TimeStep{
		State:  state,
		Reward: reward,
		Done:   done,
		Info:   make(map[string]interface{}),
	}
}
