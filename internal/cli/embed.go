package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var embedCmd = &cobra.Command{
	Use:   "embed [text...]",
	Short: "Compute the embedding vector of a text",
	Long: `Compute an embedding vector and print it as a JSON array.

Examples:
  textdigest embed "a sentence to embed"
  textdigest embed --file notes.txt --embedding-model text-embedding-3-large`,
	RunE: runEmbed,
}

var (
	embedInput inputFlags
	embedModel string
)

func init() {
	rootCmd.AddCommand(embedCmd)

	embedCmd.Flags().BoolVar(&embedInput.fromClipboard, "clipboard", false, "Read input from the clipboard")
	embedCmd.Flags().StringVar(&embedInput.filePath, "file", "", "Read input from a file")
	embedCmd.Flags().StringVar(&embedModel, "embedding-model", "", "Embedding model identifier")
}

func runEmbed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	text, err := resolveInput(ctx, embedInput, args)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	vector, err := client.Embed(ctx, text, embedModel)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("encode vector: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))

	return nil
}
