package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jacksonrnewhouse/arroyo/internal/arroyoctl"
)

func sourcesCmd() *cobra.Command {
	a := arroyoctl.New()
	return &cobra.Command{
		Use:   "sources",
		Short: "List the sources a query can read from",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Sources()
		},
	}
}

func sinksCmd() *cobra.Command {
	a := arroyoctl.New()
	return &cobra.Command{
		Use:   "sinks",
		Short: "List the sinks a pipeline can write to",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Sinks()
		},
	}
}
