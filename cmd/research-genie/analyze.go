package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-genie/internal/analysis"
	"github.com/pdiddy/research-genie/internal/format"
	"github.com/pdiddy/research-genie/internal/gateway"
	"github.com/pdiddy/research-genie/internal/input"
	"github.com/pdiddy/research-genie/internal/refine"
	"github.com/pdiddy/research-genie/internal/scraper"
	"github.com/pdiddy/research-genie/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a set of papers against a research query",
	Long: `Analyze sends three prompts to the configured LLM backend: a summary of the
papers, a numbered list of research gaps, and an explanation of the summary
pitched at the requested education level. The assembled record is validated,
stamped with metadata, and printed.

Papers come from a YAML or JSON file (--papers) or from the scraping service
(--scrape), which is queried with the refined form of --query. Paper sets
larger than --max-papers are truncated.

With --batch, each request in the file is analyzed in turn and the results
are printed as one batch; failed requests appear as error entries.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("query", "", "research query")
	analyzeCmd.Flags().String("papers", "", "YAML or JSON file holding the paper set")
	analyzeCmd.Flags().String("level", string(types.DefaultEducationLevel), "education level: high_school, undergraduate, graduate, phd, general")
	analyzeCmd.Flags().Bool("scrape", false, "fetch papers from the scraping service instead of --papers")
	analyzeCmd.Flags().Int("max-papers", 0, "maximum papers per analysis (default from analysis.max_papers)")
	analyzeCmd.Flags().String("batch", "", "YAML or JSON file holding a list of {query, papers, education_level} requests")
	analyzeCmd.Flags().String("format", "yaml", "output format: yaml or json")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	outputFormat, _ := cmd.Flags().GetString("format")
	batchFile, _ := cmd.Flags().GetString("batch")

	cfg := serviceConfig.Analysis
	if n, _ := cmd.Flags().GetInt("max-papers"); n > 0 {
		cfg.MaxPapers = n
	}
	gw := gateway.New(ctx, serviceConfig.LLM, logger)
	analyzer := analysis.New(gw, cfg, logger)
	formatter := format.New(logger)

	if batchFile != "" {
		reqs, err := input.LoadBatch(batchFile)
		if err != nil {
			return err
		}
		batch := runBatch(ctx, analyzer, formatter, reqs)
		return writeOutput(cmd.OutOrStdout(), outputFormat, batch)
	}

	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		return fmt.Errorf("--query is required")
	}
	level, _ := cmd.Flags().GetString("level")

	papers, err := loadPapers(ctx, cmd, query, analyzer.MaxPapers())
	if err != nil {
		return err
	}

	rec, err := analyzeOne(ctx, analyzer, formatter, query, papers, level)
	if err != nil {
		_ = writeOutput(cmd.OutOrStdout(), outputFormat, errorReport(formatter, err))
		return errors.New(errorKind(err))
	}
	return writeOutput(cmd.OutOrStdout(), outputFormat, rec)
}

// loadPapers reads --papers or queries the scraper with the refined query,
// then truncates to limit.
func loadPapers(ctx context.Context, cmd *cobra.Command, query string, limit int) ([]types.Paper, error) {
	scrape, _ := cmd.Flags().GetBool("scrape")
	papersFile, _ := cmd.Flags().GetString("papers")

	var papers []types.Paper
	switch {
	case scrape:
		refined := refine.New(logger).Refine(query)
		found, err := scraper.New(serviceConfig.Scraper, logger).Search(ctx, refined, limit)
		if err != nil {
			return nil, err
		}
		papers = found
	case papersFile != "":
		loaded, err := input.LoadPapers(papersFile)
		if err != nil {
			return nil, err
		}
		papers = loaded
	default:
		return nil, fmt.Errorf("provide --papers FILE or --scrape")
	}

	if len(papers) > limit {
		logger.Warn("truncating paper set", "papers", len(papers), "max_papers", limit)
	}
	return analysis.Truncate(papers, limit), nil
}

// analyzeOne runs one analysis and formats the record.
func analyzeOne(ctx context.Context, a *analysis.Analyzer, f *format.Formatter, query string, papers []types.Paper, level string) (*types.AnalysisRecord, error) {
	rec, err := a.Analyze(ctx, query, papers, level)
	if err != nil {
		return nil, err
	}
	return f.Format(*rec)
}

// runBatch analyzes each request in order. Failures become error entries;
// they do not stop the batch.
func runBatch(ctx context.Context, a *analysis.Analyzer, f *format.Formatter, reqs []input.Request) format.Batch {
	items := make([]format.BatchItem, 0, len(reqs))
	for _, r := range reqs {
		item := format.BatchItem{Query: r.Query}
		rec, err := analyzeOne(ctx, a, f, r.Query, analysis.Truncate(r.Papers, a.MaxPapers()), r.EducationLevel)
		if err != nil {
			report := errorReport(f, err)
			item.Error = &report
		} else {
			item.Record = rec
		}
		items = append(items, item)
	}
	return f.FormatBatch(items)
}
