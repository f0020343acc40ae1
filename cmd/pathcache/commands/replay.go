package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pathcache/internal/app"
)

func (c *CLI) newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>",
		Short: "Replay a scenario and print every delivered event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			async, _ := cmd.Flags().GetBool("async")
			watch, _ := cmd.Flags().GetBool("watch")
			loadRate, _ := cmd.Flags().GetFloat64("load-rate")
			debounce, _ := cmd.Flags().GetDuration("debounce")
			metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

			return c.app.Replay(cmd.Context(), args[0], app.ReplayOptions{
				Out:         cmd.OutOrStdout(),
				Async:       async,
				LoadRate:    loadRate,
				Watch:       watch,
				Debounce:    debounce,
				MetricsAddr: metricsAddr,
			})
		},
	}
	cmd.Flags().BoolP("async", "a", false, "Resolve properties on the background loader")
	cmd.Flags().BoolP("watch", "w", false, "Replay again whenever the scenario file changes")
	cmd.Flags().Float64("load-rate", 0, "Maximum load batches per second in async mode (0 is unlimited)")
	cmd.Flags().Duration("debounce", 0, "Quiet period before a watched change is replayed (default 200ms)")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	return cmd
}
