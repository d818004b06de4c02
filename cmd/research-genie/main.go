// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-genie CLI. It hosts the
// analysis pipeline: query refinement, three-prompt paper analysis through a
// configurable LLM backend, and validation of the resulting record.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-genie/internal/gateway"
	"github.com/pdiddy/research-genie/internal/logging"
	"github.com/pdiddy/research-genie/internal/secrets"
	"github.com/pdiddy/research-genie/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultUserAgent = "research-genie/1.0"

// Populated by the root command's PersistentPreRunE.
var (
	loadedSecrets map[string]string
	serviceConfig types.ServiceConfig
	logger        = logging.Nop()
)

// rootCmd is the base command for the research-genie CLI.
var rootCmd = &cobra.Command{
	Use:   "research-genie",
	Short: "LLM-backed analysis of research papers",
	Long: `research-genie analyzes a set of research papers against a query. It
refines the query, asks the configured LLM backend for a summary, a list of
research gaps, and an explanation pitched at an education level, then
validates and prints the assembled record.

The backend is chosen by llm.provider (gemini, openai, or anthropic). API keys
come from llm.api_key, the .secrets/ directory, or the provider's usual
environment variable.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadServiceConfig(viper.GetViper())
		log, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logger = log

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			names := make([]string, 0, len(s))
			for k := range s {
				names = append(names, k)
			}
			sort.Strings(names)
			logger.Debug("loaded secrets", "names", names)
		}

		cfg.LLM = gateway.ResolveConfig(cfg.LLM, loadedSecrets, os.Getenv)
		serviceConfig = cfg
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./research-genie.yaml or ~/.config/research-genie/research-genie.yaml)")
	pf.String("provider", "", "LLM provider: gemini, openai, or anthropic")
	pf.String("model", "", "LLM model identifier (default "+gateway.DefaultModel(gateway.ProviderGemini)+" for gemini)")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("llm.provider", pf.Lookup("provider"))
	_ = viper.BindPFlag("llm.model", pf.Lookup("model"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))

	setDefaults(viper.GetViper())
}

// setDefaults registers every configuration key with its default so that
// environment overrides apply even without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", string(gateway.ProviderGemini))
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("analysis.max_papers", 10)
	v.SetDefault("analysis.timeout", time.Duration(0))
	v.SetDefault("analysis.concurrent", true)
	v.SetDefault("scraper.url", "http://localhost:8002")
	v.SetDefault("scraper.timeout", 30*time.Second)
	v.SetDefault("scraper.max_retries", 3)
	v.SetDefault("scraper.user_agent", defaultUserAgent)
	v.SetDefault("log.mode", "dev")
	v.SetDefault("log.level", "info")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-genie")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-genie"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_GENIE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadServiceConfig reads every component configuration from v.
func loadServiceConfig(v *viper.Viper) types.ServiceConfig {
	return types.ServiceConfig{
		LLM: types.AIConfig{
			Provider: v.GetString("llm.provider"),
			Model:    v.GetString("llm.model"),
			APIKey:   v.GetString("llm.api_key"),
		},
		Analysis: types.AnalysisConfig{
			MaxPapers:  v.GetInt("analysis.max_papers"),
			Timeout:    v.GetDuration("analysis.timeout"),
			Concurrent: v.GetBool("analysis.concurrent"),
		},
		Scraper: types.ScraperConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("scraper.timeout"),
				UserAgent: v.GetString("scraper.user_agent"),
			},
			URL:        v.GetString("scraper.url"),
			MaxRetries: v.GetInt("scraper.max_retries"),
		},
		Log: types.LogConfig{
			Mode:  v.GetString("log.mode"),
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
