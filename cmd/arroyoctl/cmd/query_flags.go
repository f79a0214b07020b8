package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("query", "q", "", "SQL query, replaces the saved query draft")
	cmd.Flags().String("udfs", "", "Path to a file of rust udfs, replaces the saved udfs draft")
}

func queryFlags(cmd *cobra.Command) (string, string, error) {
	query, err := cmd.Flags().GetString("query")
	if err != nil {
		return "", "", fmt.Errorf("error reading query: %s", err)
	}
	udfsPath, err := cmd.Flags().GetString("udfs")
	if err != nil {
		return "", "", fmt.Errorf("error reading udfs: %s", err)
	}
	if udfsPath == "" {
		return query, "", nil
	}
	udfs, err := os.ReadFile(udfsPath)
	if err != nil {
		return "", "", fmt.Errorf("error reading udfs file %s: %s", udfsPath, err)
	}
	return query, string(udfs), nil
}
