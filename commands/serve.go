package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeu5/river-crossing-rl/server"
)

func ServeCommand() *cobra.Command {
	config := defaultTrainConfig()
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Train a Q-table and serve it over HTTP until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, done := interruptContext()
			defer done()

			config.Episodes = episodes
			config.Horizon = horizon
			config.Seed = seed
			config.SavePath = ""
			config.Render = 0
			out := cmd.OutOrStdout()
			table, stats, err := Train(ctx, config, out)
			if err != nil {
				return err
			}

			s := server.New(fmt.Sprintf(":%d", port), table, stats)
			s.Start(ctx)
			fmt.Fprintf(out, "Serving the trained table on %s\n", s.Addr)
			<-ctx.Done()
			return nil
		},
	}
	addTrainFlags(cmd, config)
	cmd.PersistentFlags().IntVar(&port, "port", 8080, "Port of the inspection server")
	return cmd
}
