package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"textdigest/internal/fetch"
	"textdigest/internal/pipeline"
)

var feedCmd = &cobra.Command{
	Use:   "feed <feed-url>",
	Short: "Summarize the newest entries of an RSS/Atom feed",
	Long: `Fetch a feed and print a one-summary-per-entry digest.

Examples:
  textdigest feed https://example.com/rss
  textdigest feed https://example.com/rss --limit 3`,
	Args: cobra.ExactArgs(1),
	RunE: runFeed,
}

var feedLimit int

func init() {
	rootCmd.AddCommand(feedCmd)

	feedCmd.Flags().IntVar(&feedLimit, "limit", 5, "Maximum number of entries to summarize")
}

func runFeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := newClient()
	if err != nil {
		return err
	}

	title, items, err := fetch.NewFetcher(log).FeedItems(ctx, args[0], feedLimit)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		return errors.New("feed has no summarizable entries")
	}

	pipe := pipeline.New(client, log)
	opts := pipelineOptions()

	out := cmd.OutOrStdout()
	if title != "" {
		fmt.Fprintf(out, "%s\n\n", title)
	}

	for _, item := range items {
		result, runErr := pipe.Run(ctx, opts, item.Text)
		if runErr != nil {
			return fmt.Errorf("summarize entry %q: %w", item.Title, runErr)
		}

		fmt.Fprintf(out, "- %s (%s)\n  %s\n", item.Title, item.URL, result.Text())
	}

	return nil
}
