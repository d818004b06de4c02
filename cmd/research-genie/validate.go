package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/research-genie/internal/format"
	"github.com/pdiddy/research-genie/internal/input"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check an analysis record's shape",
	Long: `Validate reads an analysis record from a YAML or JSON file and checks that
summary, research_gaps, and simplified_explanation are present and that
research_gaps is a list. A valid record is printed with metadata attached.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("format", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("format")
	rec, err := input.LoadRecord(args[0])
	if err != nil {
		return err
	}
	out, err := format.New(logger).FormatFields(rec)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), outputFormat, out)
}
