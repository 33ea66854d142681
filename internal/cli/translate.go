package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"textdigest/internal/clipboard"
	"textdigest/internal/llm"
)

const translateSystemPrompt = `You are a professional translator.
Translate the user's text into %s.
Preserve meaning, tone and formatting. Output only the translation.`

var translateCmd = &cobra.Command{
	Use:   "translate [text...]",
	Short: "Translate text into a target language",
	Long: `Translate text through the chat endpoint.

Examples:
  textdigest translate --to German "good morning"
  textdigest translate --to Japanese --clipboard --copy`,
	RunE: runTranslate,
}

var (
	translateInput inputFlags
	translateTo    string
	translateCopy  bool
)

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().BoolVar(&translateInput.fromClipboard, "clipboard", false, "Read input from the clipboard")
	translateCmd.Flags().StringVar(&translateInput.filePath, "file", "", "Read input from a file")
	translateCmd.Flags().StringVar(&translateInput.pageURL, "url", "", "Fetch input from a web page")
	translateCmd.Flags().StringVar(&translateTo, "to", "English", "Target language")
	translateCmd.Flags().BoolVar(&translateCopy, "copy", false, "Copy the result to the clipboard")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	text, err := resolveInput(ctx, translateInput, args)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	messages := []llm.Message{
		llm.System(fmt.Sprintf(translateSystemPrompt, translateTo)),
		llm.User(text),
	}

	translated, err := client.Send(ctx, messages, cfg.Model, cfg.Temperature)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), translated)

	if translateCopy {
		if err = clipboard.Write(translated); err != nil {
			return err
		}
	}

	return nil
}
