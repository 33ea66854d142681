package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"textdigest/internal/pipeline"
	"textdigest/internal/scheduler"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the clipboard and summarize new content",
	Long: `Poll the clipboard on a cron spec and summarize whatever new text
appears. Runs until interrupted.

Examples:
  textdigest watch
  textdigest watch --spec "@every 30s" --copy`,
	RunE: runWatch,
}

var (
	watchSpec string
	watchCopy bool
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchSpec, "spec", "", "Cron spec (default from config)")
	watchCmd.Flags().BoolVar(&watchCopy, "copy", false, "Write each summary back to the clipboard")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := newClient()
	if err != nil {
		return err
	}

	spec := watchSpec
	if spec == "" {
		spec = cfg.WatchSpec
	}

	opts := pipelineOptions()
	watcher := scheduler.New(
		ctx,
		pipeline.New(client, log),
		opts,
		cmd.OutOrStdout(),
		watchCopy,
		log,
	)

	if err = watcher.Start(spec); err != nil {
		return err
	}
	defer watcher.Stop()

	log.InfoContext(ctx, "Watcher is started",
		"spec", spec,
		"copyBack", watchCopy)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case <-ctx.Done():
		log.InfoContext(ctx, "Context is done",
			"error", ctx.Err())
	}

	return nil
}
