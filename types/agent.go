package types

import (
	"context"
	"errors"
	"fmt"
)

const (
	DefaultAlpha = 0.1
	DefaultGamma = 0.99
)

var ErrInvalidConfig = errors.New("invalid agent config")

type AgentConfig struct {
	Episodes int
	// Maximum steps per episode, 0 runs every episode until the
	// environment reports done
	Horizon int
	Alpha   float64
	Gamma   float64

	Environment Environment
	// Behaviour policy used to pick actions while training
	Explore Policy
	// Policy the table is learnt for, used for the continuation value
	Target Policy
	Table  *QTable

	// Optional progress sink, invoked after every episode
	Progress Progress
}

func (c *AgentConfig) validate() error {
	switch {
	case c.Episodes < 0:
		return fmt.Errorf("%w: negative episodes %d", ErrInvalidConfig, c.Episodes)
	case c.Horizon < 0:
		return fmt.Errorf("%w: negative horizon %d", ErrInvalidConfig, c.Horizon)
	case c.Alpha <= 0 || c.Alpha > 1:
		return fmt.Errorf("%w: alpha %v not in (0, 1]", ErrInvalidConfig, c.Alpha)
	case c.Gamma < 0 || c.Gamma > 1:
		return fmt.Errorf("%w: gamma %v not in [0, 1]", ErrInvalidConfig, c.Gamma)
	case c.Environment == nil:
		return fmt.Errorf("%w: no environment", ErrInvalidConfig)
	case c.Explore == nil || c.Target == nil:
		return fmt.Errorf("%w: exploration and target policies are required", ErrInvalidConfig)
	case c.Table == nil:
		return fmt.Errorf("%w: no action value table", ErrInvalidConfig)
	}
	return nil
}

// Progress receives a notification at the end of every episode
type Progress interface {
	Episode(episode, total int, stats *Stats)
}

// Q-learning Agent configured with the corresponding
// policies, table and environment
type Agent struct {
	config *AgentConfig
	stats  *Stats
}

// Instantiates a new Agent
func NewAgent(config *AgentConfig) (*Agent, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Agent{
		config: config,
		stats:  NewStats(config.Episodes),
	}, nil
}

// QLearning trains table on env for the given number of episodes,
// following explore and learning the values of target
func QLearning(ctx context.Context, env Environment, explore, target Policy, table *QTable, episodes int, alpha, gamma float64) (*Stats, error) {
	agent, err := NewAgent(&AgentConfig{
		Episodes:    episodes,
		Alpha:       alpha,
		Gamma:       gamma,
		Environment: env,
		Explore:     explore,
		Target:      target,
		Table:       table,
	})
	if err != nil {
		return nil, err
	}
	return agent.Run(ctx)
}

// Run the agent for the configured number of episodes. The statistics
// of the completed episodes are returned even when ctx is cancelled.
func (a *Agent) Run(ctx context.Context) (*Stats, error) {
	for i := 0; i < a.config.Episodes; i++ {
		select {
		case <-ctx.Done():
			return a.stats, ctx.Err()
		default:
		}
		if o, ok := a.config.Explore.(EpisodeObserver); ok {
			o.StartEpisode(i)
		}
		if err := a.runEpisode(); err != nil {
			return a.stats, fmt.Errorf("episode %d: %w", i, err)
		}
		if a.config.Progress != nil {
			a.config.Progress.Episode(i+1, a.config.Episodes, a.stats)
		}
	}
	return a.stats, nil
}

// run a single episode, updating the table after every step
func (a *Agent) runEpisode() error {
	env := a.config.Environment
	table := a.config.Table
	state := env.Reset()

	epReturn := 0.0
	steps := 0
	outcome := OutcomeTruncated
	for a.config.Horizon == 0 || steps < a.config.Horizon {
		action := a.config.Explore.NextAction(state)
		ts, err := env.Step(action)
		if err != nil {
			return err
		}
		steps++
		epReturn += ts.Reward

		// continuation value is zero past a terminal state
		nextVal := 0.0
		if !ts.Done {
			nextAction := a.config.Target.NextAction(ts.State)
			nextVal = table.Get(ts.State.Hash(), nextAction)
		}
		stateHash := state.Hash()
		curVal := table.Get(stateHash, action)
		table.Set(stateHash, action, curVal+a.config.Alpha*(ts.Reward+a.config.Gamma*nextVal-curVal))

		state = ts.State
		if ts.Done {
			outcome = terminalOutcome(env, state)
			break
		}
	}
	a.stats.record(epReturn, steps, outcome)
	return nil
}

func terminalOutcome(env Environment, state State) Outcome {
	if g, ok := env.(GoalChecker); ok && !g.IsGoal(state) {
		return OutcomeLost
	}
	return OutcomeWon
}

func (a *Agent) Stats() *Stats {
	return a.stats
}
