package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var speakCmd = &cobra.Command{
	Use:   "speak [text...]",
	Short: "Convert text to spoken audio",
	Long: `Convert text into an MP3 file through the speech endpoint.

Examples:
  textdigest speak "hello there" --out greeting.mp3
  textdigest speak --clipboard --voice nova`,
	RunE: runSpeak,
}

var (
	speakInput inputFlags
	speakOut   string
	speakModel string
	speakVoice string
)

func init() {
	rootCmd.AddCommand(speakCmd)

	speakCmd.Flags().BoolVar(&speakInput.fromClipboard, "clipboard", false, "Read input from the clipboard")
	speakCmd.Flags().StringVar(&speakInput.filePath, "file", "", "Read input from a file")
	speakCmd.Flags().StringVar(&speakOut, "out", "speech.mp3", "Output file path")
	speakCmd.Flags().StringVar(&speakModel, "speech-model", "", "Speech model identifier")
	speakCmd.Flags().StringVar(&speakVoice, "voice", "", "Voice name")
}

func runSpeak(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	text, err := resolveInput(ctx, speakInput, args)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	audio, err := client.Speak(ctx, text, speakModel, speakVoice)
	if err != nil {
		return err
	}

	if err = os.WriteFile(speakOut, audio, 0o600); err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", speakOut, humanize.Bytes(uint64(len(audio))))

	return nil
}
