package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-genie/internal/extract"
	"github.com/pdiddy/research-genie/internal/gateway"
	"github.com/pdiddy/research-genie/internal/input"
	"github.com/pdiddy/research-genie/internal/prompt"
	"github.com/pdiddy/research-genie/pkg/types"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Render a task prompt, optionally sending it to the LLM",
	Long: `Prompt renders the prompt for one task kind: summary, gaps,
simplified_explanation, comparison, or citation_analysis. Without --run the
prompt text is printed. With --run it is sent to the configured backend and
the extracted response is printed; gaps responses print one gap per line.`,
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().String("kind", string(types.TaskSummary), "task kind: "+prompt.TaskKindList())
	promptCmd.Flags().String("papers", "", "YAML or JSON file holding the paper set")
	promptCmd.Flags().String("query", "", "research query")
	promptCmd.Flags().String("summary", "", "summary text (simplified_explanation only)")
	promptCmd.Flags().String("level", string(types.DefaultEducationLevel), "education level (simplified_explanation only)")
	promptCmd.Flags().Bool("run", false, "send the prompt to the LLM backend")

	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	kindFlag, _ := cmd.Flags().GetString("kind")
	kind, err := prompt.ParseTaskKind(kindFlag)
	if err != nil {
		return err
	}

	in := prompt.Input{}
	in.Query, _ = cmd.Flags().GetString("query")
	in.Summary, _ = cmd.Flags().GetString("summary")
	level, _ := cmd.Flags().GetString("level")
	in.Level = types.ParseEducationLevel(level)

	if papersFile, _ := cmd.Flags().GetString("papers"); papersFile != "" {
		papers, err := input.LoadPapers(papersFile)
		if err != nil {
			return err
		}
		in.Papers = prompt.FormatPapers(papers)
	}

	text, err := prompt.Build(kind, in)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if run, _ := cmd.Flags().GetBool("run"); !run {
		_, err := fmt.Fprint(w, text)
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	raw, err := gateway.New(ctx, serviceConfig.LLM, logger).Invoke(ctx, text)
	if err != nil {
		return err
	}
	res, err := extract.Extract(kind, raw)
	if err != nil {
		return err
	}
	if res.Items != nil {
		for _, item := range res.Items {
			fmt.Fprintln(w, item)
		}
		return nil
	}
	_, err = fmt.Fprintln(w, res.Text)
	return err
}
