package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-genie/internal/gateway"
	"github.com/pdiddy/research-genie/internal/scraper"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Report LLM backend and scraper status",
	Long: `Health reports whether the configured LLM backend initialized (no request
is sent to it) and whether the scraping service answers its health check.`,
	RunE: runHealth,
}

func init() {
	healthCmd.Flags().String("format", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(healthCmd)
}

type healthReport struct {
	Provider       string `json:"provider" yaml:"provider"`
	Model          string `json:"model" yaml:"model"`
	LLMReady       bool   `json:"llm_ready" yaml:"llm_ready"`
	LLMError       string `json:"llm_error,omitempty" yaml:"llm_error,omitempty"`
	ScraperURL     string `json:"scraper_url" yaml:"scraper_url"`
	ScraperHealthy bool   `json:"scraper_healthy" yaml:"scraper_healthy"`
}

func runHealth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	outputFormat, _ := cmd.Flags().GetString("format")

	gw := gateway.New(ctx, serviceConfig.LLM, logger)
	sc := scraper.New(serviceConfig.Scraper, logger)

	report := healthReport{
		Provider:       string(gw.Provider()),
		Model:          gw.Model(),
		LLMReady:       gw.Ready(),
		ScraperURL:     sc.BaseURL(),
		ScraperHealthy: sc.Healthy(ctx),
	}
	if err := gw.InitError(); err != nil {
		report.LLMError = err.Error()
	}
	if err := writeOutput(cmd.OutOrStdout(), outputFormat, report); err != nil {
		return err
	}
	if !report.LLMReady {
		return fmt.Errorf("llm backend %s is not ready", report.Provider)
	}
	return nil
}
