package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jacksonrnewhouse/arroyo/internal/arroyoctl"
)

func versionCmd() *cobra.Command {
	a := arroyoctl.New()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print client version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Version()
		},
	}
	return cmd
}
