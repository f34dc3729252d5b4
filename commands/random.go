package commands

import (
	"fmt"
	"io"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/river-crossing-rl/policies"
	"github.com/zeu5/river-crossing-rl/river"
	"github.com/zeu5/river-crossing-rl/types"
	"github.com/zeu5/river-crossing-rl/util"
)

// RandomEpisode plays uniformly random actions until the episode ends or
// the horizon is reached, printing every step
func RandomEpisode(out io.Writer, horizon int, seed uint64, color bool) (*types.Trace, types.Outcome, error) {
	env := river.NewEnvironment()
	policy := policies.NewUniformRandom(env.NumActions(), seed)
	trace := types.NewTrace()

	state := env.Reset()
	river.Render(out, state.(river.State), color)
	for step := 0; horizon == 0 || step < horizon; step++ {
		action := policy.NextAction(state)
		ts, err := env.Step(action)
		if err != nil {
			return trace, types.OutcomeTruncated, err
		}
		trace.Append(state, action, ts.Reward, ts.State)
		river.RenderStep(out, action, ts, color)
		state = ts.State
		if ts.Done {
			if env.IsGoal(state) {
				return trace, types.OutcomeWon, nil
			}
			return trace, types.OutcomeLost, nil
		}
	}
	return trace, types.OutcomeTruncated, nil
}

func RandomCommand() *cobra.Command {
	var color bool
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Play one episode of random actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			trace, outcome, err := RandomEpisode(out, horizon, seed, color)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Episode %s after %d steps\n", outcome, trace.Len())
			if saveFile == "" {
				return nil
			}
			return util.WriteJSON(path.Join(saveFile, "random_episode.json"), trace)
		},
	}
	cmd.PersistentFlags().BoolVar(&color, "color", false, "Color the rendered states")
	return cmd
}
