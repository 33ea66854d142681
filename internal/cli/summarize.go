package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"textdigest/internal/clipboard"
	"textdigest/internal/pipeline"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [text...]",
	Short: "Summarize text through the chunked pipeline",
	Long: `Summarize text of any length.

Input longer than the block budget is split into ordered blocks; each block
is summarized separately and the results can be reduced into one summary.

Examples:
  textdigest summarize "some long text"
  textdigest summarize --file notes.txt --reduce
  textdigest summarize --clipboard --copy
  textdigest summarize --url https://example.com/article`,
	RunE: runSummarize,
}

var (
	summarizeInput        inputFlags
	summarizeNch          int
	summarizeSummaryBlock int
	summarizeAttempts     int
	summarizeReduce       bool
	summarizeCopy         bool
)

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().BoolVar(&summarizeInput.fromClipboard, "clipboard", false, "Read input from the clipboard")
	summarizeCmd.Flags().StringVar(&summarizeInput.filePath, "file", "", "Read input from a file")
	summarizeCmd.Flags().StringVar(&summarizeInput.pageURL, "url", "", "Fetch input from a web page")
	summarizeCmd.Flags().IntVar(&summarizeNch, "nch", 0, "Block size in characters (0 = configured default)")
	summarizeCmd.Flags().IntVar(&summarizeSummaryBlock, "summary-block", 0, "Target summary size per block (0 = configured default)")
	summarizeCmd.Flags().IntVar(&summarizeAttempts, "attempts", 0, "Max remote calls per block (0 = configured default)")
	summarizeCmd.Flags().BoolVar(&summarizeReduce, "reduce", false, "Reduce per-block summaries into one")
	summarizeCmd.Flags().BoolVar(&summarizeCopy, "copy", false, "Copy the result to the clipboard")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	text, err := resolveInput(ctx, summarizeInput, args)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	opts := pipelineOptions()
	if summarizeNch > 0 {
		opts.BlockSize = summarizeNch
	}
	if summarizeSummaryBlock > 0 {
		opts.SummaryBlock = summarizeSummaryBlock
	}
	if summarizeAttempts > 0 {
		opts.MaxAttempts = summarizeAttempts
	}
	opts.Reduce = summarizeReduce

	result, err := pipeline.New(client, log).Run(ctx, opts, text)
	if err != nil {
		return err
	}

	summary := result.Text()
	fmt.Fprintln(cmd.OutOrStdout(), summary)

	if summarizeCopy {
		if err = clipboard.Write(summary); err != nil {
			return err
		}
	}

	return nil
}
