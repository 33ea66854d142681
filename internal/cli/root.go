// Package cli wires the cobra command surface. All configuration resolves
// up front (config file, environment, flags) before any command runs.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"textdigest/internal/config"
	"textdigest/internal/llm"
	"textdigest/internal/pipeline"
)

var (
	cfg config.Config
	log *slog.Logger

	flagConfig      string
	flagVerbose     bool
	flagModel       string
	flagTemperature float64
)

var rootCmd = &cobra.Command{
	Use:   "textdigest",
	Short: "Summarize, translate and transform text with generative APIs",
	Long: `textdigest - a command-line companion for OpenAI-style APIs

Long inputs are split into bounded blocks, each block is summarized through
the chat endpoint with a length-driven retry, and the per-block results can
be reduced into one consolidated summary. Input comes from arguments, files,
stdin, the clipboard, web pages or feeds.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(log)

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if cmd.Flags().Changed("model") {
			cfg.Model = flagModel
		}
		if cmd.Flags().Changed("temperature") {
			cfg.Temperature = flagTemperature
		}

		return nil
	},
}

// Execute runs the CLI under the given context.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", config.DefaultModel, "Model identifier")
	rootCmd.PersistentFlags().Float64Var(&flagTemperature, "temperature", config.DefaultTemperature, "Sampling temperature (0-1)")
}

func newClient() (*llm.OpenAIClient, error) {
	client, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	if err != nil {
		return nil, fmt.Errorf("create OpenAI client (set OPENAI_API_KEY): %w", err)
	}

	return client, nil
}

func pipelineOptions() pipeline.Options {
	return pipeline.Options{
		BlockSize:    cfg.BlockSize,
		SummaryBlock: cfg.SummaryBlock,
		Model:        cfg.Model,
		Temperature:  cfg.Temperature,
		MaxAttempts:  cfg.MaxAttempts,
	}
}
