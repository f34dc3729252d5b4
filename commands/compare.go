package commands

import (
	"context"
	"io"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/river-crossing-rl/types"
	"github.com/zeu5/river-crossing-rl/util"
)

// outcomeHistory appends every run's outcome datasets to a jsonl file
func outcomeHistory(savePath string) types.Comparator {
	return func(run int, names []string, ds []types.DataSet) error {
		for i, name := range names {
			entry := map[string]interface{}{
				"run":        run,
				"experiment": name,
				"outcome":    ds[i],
			}
			if err := util.AppendJSON(path.Join(savePath, "outcomes.jsonl"), entry); err != nil {
				return err
			}
		}
		return nil
	}
}

// Compare trains one agent per exploration strategy in every run and
// compares their returns and greedy success rates
func Compare(ctx context.Context, config *TrainConfig, strategies []string, runs int, out io.Writer) error {
	c := types.NewComparison(&types.ComparisonConfig{
		Runs:              runs,
		Episodes:          config.Episodes,
		RecordPath:        config.SavePath,
		Output:            out,
		ProgressFrequency: config.Episodes / 100,
	})
	c.AddAnalysis("Outcomes", types.NewOutcomeAnalyzer(config.Render, config.EvalHorizon), types.OutcomePrinter(out))
	if config.SavePath != "" {
		c.AddAnalysis("OutcomeHistory", types.NewOutcomeAnalyzer(config.Render, config.EvalHorizon), outcomeHistory(config.SavePath))
		c.AddAnalysis("Returns", types.NewReturnsAnalyzer(config.Window), types.JSONComparator(config.SavePath, "returns"))
		c.AddAnalysis("ReturnsPlot", types.NewReturnsAnalyzer(config.Window), types.ReturnsPlotter(config.SavePath))
		c.AddAnalysis("ReturnsChart", types.NewReturnsAnalyzer(config.Window), types.ReturnsChart(config.SavePath))
	}

	for i, strategy := range strategies {
		strategyConfig := *config
		strategyConfig.Explore = strategy
		offset := i
		// checked up front so that a typo fails before any training
		if _, err := newExplorer(&strategyConfig, types.NewQTable(1), 0); err != nil {
			return err
		}
		c.AddExperiment(types.NewExperiment(strategy, func(run int) *types.AgentConfig {
			agentCfg, _ := agentConfig(&strategyConfig, policySeed(run, offset))
			return agentCfg
		}))
	}
	return c.Run(ctx)
}

func CompareCommand() *cobra.Command {
	config := defaultTrainConfig()
	var strategies []string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare exploration strategies over a number of runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, done := interruptContext()
			defer done()

			config.Episodes = episodes
			config.Horizon = horizon
			config.SavePath = saveFile
			return Compare(ctx, config, strategies, runs, cmd.OutOrStdout())
		},
	}
	addTrainFlags(cmd, config)
	cmd.PersistentFlags().StringSliceVar(&strategies, "strategies", []string{"uniform", "egreedy", "softmax"}, "Exploration strategies to compare")
	cmd.PersistentFlags().IntVar(&config.Render, "eval-episodes", 10, "Greedy rollouts used to measure the success rate")
	cmd.PersistentFlags().IntVar(&config.EvalHorizon, "eval-horizon", config.EvalHorizon, "Horizon of the greedy rollouts")
	cmd.PersistentFlags().IntVar(&config.Window, "window", config.Window, "Moving average window of the plots")
	return cmd
}
