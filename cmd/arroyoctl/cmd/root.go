package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jacksonrnewhouse/arroyo/pkg/client"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "arroyoctl",
		Short:        "arroyoctl edits, previews and starts Arroyo SQL pipelines.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "config file (default is $HOME/.arroyoctl.yaml)")
	client.AddApiConnectionCommandlineArgs(cmd)
	cmd.PersistentFlags().String("draftBackend", "", "where drafts are saved: file, memory or redis")
	viper.BindPFlag("drafts.backend", cmd.PersistentFlags().Lookup("draftBackend"))

	cmd.AddCommand(
		checkCmd(),
		previewCmd(),
		startCmd(),
		draftCmd(),
		sourcesCmd(),
		sinksCmd(),
		errorsCmd(),
		versionCmd(),
	)

	return cmd
}
