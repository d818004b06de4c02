package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-genie/internal/format"
	"github.com/pdiddy/research-genie/internal/refine"
)

var refineCmd = &cobra.Command{
	Use:   "refine <query...>",
	Short: "Normalize a research query",
	Long: `Refine lowercases the query, strips punctuation, drops short stop words
from long queries, and appends "research" to short queries that carry no
academic keyword. The original and refined queries are printed together with
the query's key terms.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRefine,
}

func init() {
	refineCmd.Flags().String("format", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(refineCmd)
}

type refineOutput struct {
	format.Refinement `yaml:",inline"`
	KeyTerms          []string `json:"key_terms" yaml:"key_terms"`
}

func runRefine(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("format")
	query := strings.Join(args, " ")

	refined := refine.New(logger).Refine(query)
	out := refineOutput{
		Refinement: format.New(logger).FormatRefinement(query, refined),
		KeyTerms:   refine.KeyTerms(refined),
	}
	return writeOutput(cmd.OutOrStdout(), outputFormat, out)
}
