package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jacksonrnewhouse/arroyo/internal/arroyoctl"
	"github.com/jacksonrnewhouse/arroyo/internal/common"
)

func previewCmd() *cobra.Command {
	return previewCmdWithApp(arroyoctl.New())
}

func previewCmdWithApp(a *arroyoctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Run a query as a preview and print its output",
		Long: `Runs the query as a preview job and prints its output until the job ends.
Interrupting the command stops the preview job.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			query, udfs, err := queryFlags(cmd)
			if err != nil {
				return err
			}
			metricsPort, err := cmd.Flags().GetUint16("metrics-port")
			if err != nil {
				return err
			}
			if metricsPort > 0 {
				shutdown := common.ServeMetrics(metricsPort)
				defer shutdown()
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Preview(ctx, query, udfs)
		},
	}
	addQueryFlags(cmd)
	cmd.Flags().Uint16("metrics-port", 0, "Serve prometheus metrics on this port while the preview runs")
	return cmd
}
