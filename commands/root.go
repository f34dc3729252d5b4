package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	episodes int
	horizon  int
	saveFile string
	runs     int
	seed     uint64
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:          "river-crossing",
		Short:        "Tabular Q-learning on the wolf, goat and cabbage river crossing",
		SilenceUsage: true,
	}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 10000, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", 0, "Horizon of each episode, 0 runs until the episode ends")
	rootCommand.PersistentFlags().StringVarP(&saveFile, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().IntVar(&runs, "runs", 1, "Number of experiment runs")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed of the random policies, 0 seeds from the clock")
	// adding the subcommands here
	rootCommand.AddCommand(TrainCommand())
	rootCommand.AddCommand(CompareCommand())
	rootCommand.AddCommand(RandomCommand())
	rootCommand.AddCommand(ServeCommand())
	return rootCommand
}

// interruptContext is cancelled on an interrupt or when done is called
func interruptContext() (context.Context, func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	doneCh := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-sigCh:
		case <-doneCh:
		}
		signal.Stop(sigCh)
		cancel()
	}()
	return ctx, func() { close(doneCh) }
}

// policySeed derives distinct seeds for the policies of a run, keeping 0 as
// the clock seeded default
func policySeed(run, offset int) uint64 {
	if seed == 0 {
		return 0
	}
	return seed + uint64(run)*1000 + uint64(offset)
}
