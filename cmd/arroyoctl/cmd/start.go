package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksonrnewhouse/arroyo/internal/arroyoctl"
)

func startCmd() *cobra.Command {
	return startCmdWithApp(arroyoctl.New())
}

func startCmdWithApp(a *arroyoctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start [name]",
		Short: "Start a query as a pipeline",
		Long: `Checks the query and starts it as a durable pipeline writing to the given sink.
The query, udfs, name and launch options can also be read from a pipeline file:

  name: orders
  sink: kafka_orders
  parallelism: 2
  query: SELECT * FROM orders`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			params := arroyoctl.StartParams{}
			if len(args) == 1 {
				params.Name = args[0]
			}

			var err error
			params.Query, params.Udfs, err = queryFlags(cmd)
			if err != nil {
				return err
			}
			if params.File, err = cmd.Flags().GetString("file"); err != nil {
				return fmt.Errorf("error reading file: %s", err)
			}
			if params.Sink, err = cmd.Flags().GetString("sink"); err != nil {
				return fmt.Errorf("error reading sink: %s", err)
			}
			if params.Parallelism, err = cmd.Flags().GetUint64("parallelism"); err != nil {
				return fmt.Errorf("error reading parallelism: %s", err)
			}
			if params.CheckpointIntervalMs, err = cmd.Flags().GetUint64("checkpoint-interval-ms"); err != nil {
				return fmt.Errorf("error reading checkpoint-interval-ms: %s", err)
			}
			return a.Start(params)
		},
	}
	addQueryFlags(cmd)
	cmd.Flags().StringP("file", "f", "", "Pipeline file in yaml or json")
	cmd.Flags().String("sink", "", "Sink to write to, see arroyoctl sinks (defaults to defaultSink from the config)")
	cmd.Flags().Uint64("parallelism", 0, "Parallelism of every operator (defaults to the configured default)")
	cmd.Flags().Uint64("checkpoint-interval-ms", 0, "Checkpoint interval in milliseconds (defaults to the configured default)")
	return cmd
}
