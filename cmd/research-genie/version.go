package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-genie/internal/format"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of research-genie",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "research-genie %s (output schema %s)\n", version, format.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
