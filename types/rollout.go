package types

// Rollout runs one episode following policy without learning, for at most
// horizon steps
func Rollout(env Environment, policy Policy, horizon int) (*Trace, Outcome, error) {
	state := env.Reset()
	trace := NewTrace()
	for i := 0; i < horizon; i++ {
		action := policy.NextAction(state)
		ts, err := env.Step(action)
		if err != nil {
			return trace, OutcomeTruncated, err
		}
		trace.Append(state, action, ts.Reward, ts.State)
		state = ts.State
		if ts.Done {
			return trace, terminalOutcome(env, state), nil
		}
	}
	return trace, OutcomeTruncated, nil
}

// SuccessRate is the fraction of rollouts that end in a goal state within
// the horizon
func SuccessRate(env Environment, policy Policy, episodes, horizon int) (float64, error) {
	if episodes <= 0 {
		return 0, nil
	}
	wins := 0
	for i := 0; i < episodes; i++ {
		_, outcome, err := Rollout(env, policy, horizon)
		if err != nil {
			return 0, err
		}
		if outcome == OutcomeWon {
			wins++
		}
	}
	return float64(wins) / float64(episodes), nil
}
