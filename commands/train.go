package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/river-crossing-rl/policies"
	"github.com/zeu5/river-crossing-rl/river"
	"github.com/zeu5/river-crossing-rl/types"
	"github.com/zeu5/river-crossing-rl/util"
)

// TrainConfig holds the learning and exploration parameters of a training
// run
type TrainConfig struct {
	Episodes int
	Horizon  int
	Alpha    float64
	Gamma    float64
	// uniform, egreedy or softmax
	Explore     string
	Epsilon     policies.EpsilonSchedule
	Temperature float64
	Seed        uint64

	// number of greedy rollouts printed after training
	Render      int
	EvalHorizon int
	Color       bool
	SavePath    string
	// window of the moving average in the plots
	Window int
}

func defaultTrainConfig() *TrainConfig {
	return &TrainConfig{
		Alpha:       types.DefaultAlpha,
		Gamma:       types.DefaultGamma,
		Explore:     "uniform",
		Epsilon:     policies.EpsilonSchedule{Max: 1, Min: 0.1, Decay: 0.999},
		Temperature: 1,
		Render:      10,
		EvalHorizon: 50,
		Window:      100,
	}
}

// newExplorer builds the exploration policy named by the config
func newExplorer(config *TrainConfig, table *types.QTable, seed uint64) (types.Policy, error) {
	switch config.Explore {
	case "uniform":
		return policies.NewUniformRandom(river.NumActions, seed), nil
	case "egreedy":
		return policies.NewEpsilonGreedy(table, config.Epsilon, seed), nil
	case "softmax":
		return policies.NewSoftmax(table, config.Temperature, seed), nil
	}
	return nil, fmt.Errorf("unknown exploration policy %q, expected uniform, egreedy or softmax", config.Explore)
}

// agentConfig wires a fresh table, environment and policies for a run
func agentConfig(config *TrainConfig, seed uint64) (*types.AgentConfig, error) {
	table := types.NewQTable(river.NumActions)
	explore, err := newExplorer(config, table, seed)
	if err != nil {
		return nil, err
	}
	return &types.AgentConfig{
		Episodes:    config.Episodes,
		Horizon:     config.Horizon,
		Alpha:       config.Alpha,
		Gamma:       config.Gamma,
		Environment: river.NewEnvironment(),
		Explore:     explore,
		Target:      policies.NewGreedy(table),
		Table:       table,
	}, nil
}

// Train runs Q-learning on the river crossing, reports progress and the
// greedy rollouts on out and records the results under the save path
func Train(ctx context.Context, config *TrainConfig, out io.Writer) (*types.QTable, *types.Stats, error) {
	agentCfg, err := agentConfig(config, config.Seed)
	if err != nil {
		return nil, nil, err
	}
	progress := types.NewTerminalProgress(out, config.Explore, config.Episodes/100)
	agentCfg.Progress = progress
	agent, err := types.NewAgent(agentCfg)
	if err != nil {
		return nil, nil, err
	}
	stats, err := agent.Run(ctx)
	progress.Stop()
	if err != nil {
		return agentCfg.Table, stats, err
	}

	summary := stats.Summary()
	fmt.Fprintf(out, "Average return: %.2f (won %d, lost %d, truncated %d)\n",
		summary.MeanReturn, summary.Wins, summary.Losses, summary.Truncated)

	env := river.NewEnvironment()
	for i := 0; i < config.Render; i++ {
		trace, outcome, err := types.Rollout(env, agentCfg.Target, config.EvalHorizon)
		if err != nil {
			return agentCfg.Table, stats, err
		}
		river.RenderTrace(out, i, trace, outcome, config.Color)
	}

	if config.SavePath != "" {
		if err := record(config, agentCfg.Table, stats); err != nil {
			return agentCfg.Table, stats, fmt.Errorf("recording results: %w", err)
		}
	}
	return agentCfg.Table, stats, nil
}

func record(config *TrainConfig, table *types.QTable, stats *types.Stats) error {
	if err := util.WriteJSON(path.Join(config.SavePath, "returns.json"), stats.Results()); err != nil {
		return err
	}
	if err := util.WriteJSON(path.Join(config.SavePath, "summary.json"), stats.Summary()); err != nil {
		return err
	}
	if err := util.WriteJSON(path.Join(config.SavePath, "qtable.json"), table.Entries()); err != nil {
		return err
	}
	trace, outcome, err := types.Rollout(river.NewEnvironment(), policies.NewGreedy(table), config.EvalHorizon)
	if err != nil {
		return err
	}
	lines := []string{"outcome: " + outcome.String()}
	for _, a := range trace.Actions() {
		action, _ := river.ActionFromIndex(a)
		lines = append(lines, action.String())
	}
	if err := util.WriteToFile(path.Join(config.SavePath, "greedy_actions.txt"), lines...); err != nil {
		return err
	}
	if stats.Episodes() > 0 {
		if err := types.PlotReturns(stats, config.Window, path.Join(config.SavePath, "returns.png")); err != nil {
			return err
		}
		f, err := os.Create(path.Join(config.SavePath, "returns.html"))
		if err != nil {
			return err
		}
		defer f.Close()
		if err := types.ChartReturns(stats, config.Window, f); err != nil {
			return err
		}
	}
	return river.SaveHeatMap(table, path.Join(config.SavePath, "qtable.png"))
}

// addTrainFlags registers the learning flags on cmd
func addTrainFlags(cmd *cobra.Command, config *TrainConfig) {
	cmd.PersistentFlags().Float64Var(&config.Alpha, "alpha", config.Alpha, "Learning rate")
	cmd.PersistentFlags().Float64Var(&config.Gamma, "gamma", config.Gamma, "Discount factor")
	cmd.PersistentFlags().StringVar(&config.Explore, "explore", config.Explore, "Exploration policy: uniform, egreedy or softmax")
	cmd.PersistentFlags().Float64Var(&config.Epsilon.Max, "epsilon-max", config.Epsilon.Max, "Initial epsilon of egreedy")
	cmd.PersistentFlags().Float64Var(&config.Epsilon.Min, "epsilon-min", config.Epsilon.Min, "Final epsilon of egreedy")
	cmd.PersistentFlags().Float64Var(&config.Epsilon.Decay, "epsilon-decay", config.Epsilon.Decay, "Per episode epsilon decay of egreedy")
	cmd.PersistentFlags().Float64Var(&config.Temperature, "temperature", config.Temperature, "Temperature of softmax")
}

func TrainCommand() *cobra.Command {
	config := defaultTrainConfig()

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a Q-table and print greedy rollouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, done := interruptContext()
			defer done()

			config.Episodes = episodes
			config.Horizon = horizon
			config.Seed = seed
			config.SavePath = saveFile
			_, _, err := Train(ctx, config, cmd.OutOrStdout())
			return err
		},
	}
	addTrainFlags(cmd, config)
	cmd.PersistentFlags().IntVar(&config.Render, "render", config.Render, "Number of greedy rollouts to print after training")
	cmd.PersistentFlags().IntVar(&config.EvalHorizon, "eval-horizon", config.EvalHorizon, "Horizon of the greedy rollouts")
	cmd.PersistentFlags().BoolVar(&config.Color, "color", false, "Color the rendered states")
	cmd.PersistentFlags().IntVar(&config.Window, "window", config.Window, "Moving average window of the plots")
	return cmd
}
