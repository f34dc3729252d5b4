package types

// Policy picks the next action index for a state
type Policy interface {
	NextAction(State) int
}

// PolicyFunc adapts a plain function to a Policy
type PolicyFunc func(State) int

func (f PolicyFunc) NextAction(s State) int {
	return f(s)
}

var _ Policy = PolicyFunc(nil)

// EpisodeObserver is implemented by policies that change with the episode
// count, the agent calls StartEpisode before every episode
type EpisodeObserver interface {
	StartEpisode(int)
}
