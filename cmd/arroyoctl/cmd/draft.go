package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacksonrnewhouse/arroyo/internal/arroyoctl"
)

func draftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage the saved query and udfs drafts",
	}
	cmd.AddCommand(
		draftGetCmdWithApp(arroyoctl.New()),
		draftSetCmdWithApp(arroyoctl.New()),
		draftClearCmdWithApp(arroyoctl.New()),
		draftCopyCmdWithApp(arroyoctl.New()),
	)
	return cmd
}

func draftGetCmdWithApp(a *arroyoctl.App) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the saved drafts",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.DraftGet()
		},
	}
}

func draftSetCmdWithApp(a *arroyoctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <query|udf> [text]",
		Short: "Save a draft",
		Long:  `Saves the text given as argument, or the content of --file, as the query or udf draft.`,
		Args:  cobra.RangeArgs(1, 2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("file")
			if err != nil {
				return fmt.Errorf("error reading file: %s", err)
			}
			switch {
			case len(args) == 2 && path == "":
				return a.DraftSet(args[0], args[1])
			case len(args) == 1 && path != "":
				text, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("error reading draft file %s: %s", path, err)
				}
				return a.DraftSet(args[0], string(text))
			default:
				return fmt.Errorf("give the draft either as argument or with --file")
			}
		},
	}
	cmd.Flags().StringP("file", "f", "", "File holding the draft text")
	return cmd
}

func draftClearCmdWithApp(a *arroyoctl.App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [query|udf]...",
		Short: "Remove saved drafts, all of them by default",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.DraftClear(args...)
		},
	}
}

func draftCopyCmdWithApp(a *arroyoctl.App) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <pipelineId>",
		Short: "Save the query and udfs of an existing pipeline as the drafts",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.DraftCopy(args[0])
		},
	}
}
