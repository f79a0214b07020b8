package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jacksonrnewhouse/arroyo/internal/arroyoctl"
)

func checkCmd() *cobra.Command {
	return checkCmdWithApp(arroyoctl.New())
}

func checkCmdWithApp(a *arroyoctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compile a query and print its pipeline graph",
		Long:  `Compiles the given query, or the saved query draft when none is given, and prints the graph or the compiler errors.`,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			query, udfs, err := queryFlags(cmd)
			if err != nil {
				return err
			}
			return a.Check(query, udfs)
		},
	}
	addQueryFlags(cmd)
	return cmd
}
