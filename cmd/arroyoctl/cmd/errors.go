package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jacksonrnewhouse/arroyo/internal/arroyoctl"
)

func errorsCmd() *cobra.Command {
	a := arroyoctl.New()
	return &cobra.Command{
		Use:   "errors <jobId>",
		Short: "Print the operator errors reported by a job",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Errors(args[0])
		},
	}
}
